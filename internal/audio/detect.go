package audio

import (
	"log/slog"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// LooksLikeWav reports whether the given content prefix identifies a WAV
// stream. Magic byte detection takes precedence; the filename extension is
// only consulted when the content is empty or unrecognized.
func LooksLikeWav(filename string, prefix []byte) bool {
	if len(prefix) > 0 {
		mtype := mimetype.Detect(prefix)
		mime := strings.ToLower(mtype.String())

		switch {
		case strings.Contains(mime, "wav") || mime == "audio/vnd.wave":
			slog.Debug("magic bytes indicate WAV",
				"filename", filename,
				"mime", mime,
				"bytes_analyzed", len(prefix))
			return true
		case strings.HasPrefix(mime, "audio/") || strings.HasPrefix(mime, "video/"):
			// Positively identified as some other media type; the
			// extension cannot override that.
			slog.Debug("magic bytes indicate non-WAV media",
				"filename", filename,
				"mime", mime)
			return false
		}

		slog.Debug("magic detection inconclusive, falling back to extension",
			"filename", filename,
			"mime", mime)
	}

	lower := strings.ToLower(filename)
	isWav := strings.HasSuffix(lower, ".wav") || strings.HasSuffix(lower, ".wave")

	slog.Debug("extension check", "filename", filename, "is_wav", isWav)
	return isWav
}
