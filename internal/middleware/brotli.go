package middleware

import (
	"mime"
	"net/http"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/gin-gonic/gin"
)

type BrotliConfig struct {
	Quality   int
	MinLength int
	// ContentTypes lists the media types eligible for compression.
	ContentTypes []string
}

var DefaultBrotliConfig = BrotliConfig{
	Quality:      brotli.DefaultCompression,
	MinLength:    1024,
	ContentTypes: []string{"application/json", "text/plain"},
}

// brotliWriter holds the body until it either reaches MinLength or the
// handler finishes, then commits to compressed or plain output.
type brotliWriter struct {
	gin.ResponseWriter
	cfg     *BrotliConfig
	buf     []byte
	encoder *brotli.Writer
	decided bool
}

func (bw *brotliWriter) Write(data []byte) (int, error) {
	if bw.decided {
		if bw.encoder != nil {
			return bw.encoder.Write(data)
		}
		return bw.ResponseWriter.Write(data)
	}

	bw.buf = append(bw.buf, data...)
	if len(bw.buf) < bw.cfg.MinLength {
		return len(data), nil
	}

	if err := bw.commit(); err != nil {
		return 0, err
	}
	return len(data), nil
}

func (bw *brotliWriter) WriteString(s string) (int, error) {
	return bw.Write([]byte(s))
}

// commit picks the encoding from what is buffered so far and writes it out.
func (bw *brotliWriter) commit() error {
	bw.decided = true

	if len(bw.buf) >= bw.cfg.MinLength && bw.compressible() {
		h := bw.ResponseWriter.Header()
		h.Set("Content-Encoding", "br")
		h.Del("Content-Length")
		bw.encoder = brotli.NewWriterLevel(bw.ResponseWriter, bw.cfg.Quality)
		_, err := bw.encoder.Write(bw.buf)
		bw.buf = nil
		return err
	}

	if len(bw.buf) == 0 {
		return nil
	}
	_, err := bw.ResponseWriter.Write(bw.buf)
	bw.buf = nil
	return err
}

func (bw *brotliWriter) finish() error {
	if !bw.decided {
		if err := bw.commit(); err != nil {
			return err
		}
	}
	if bw.encoder != nil {
		return bw.encoder.Close()
	}
	return nil
}

func (bw *brotliWriter) compressible() bool {
	if bw.ResponseWriter.Header().Get("Content-Encoding") != "" {
		return false
	}
	mediaType, _, err := mime.ParseMediaType(bw.ResponseWriter.Header().Get("Content-Type"))
	if err != nil {
		return false
	}
	for _, ct := range bw.cfg.ContentTypes {
		if mediaType == ct {
			return true
		}
	}
	return false
}

func Brotli() gin.HandlerFunc {
	return BrotliWithConfig(DefaultBrotliConfig)
}

func BrotliWithConfig(cfg BrotliConfig) gin.HandlerFunc {
	if cfg.Quality < 0 || cfg.Quality > 11 {
		cfg.Quality = brotli.DefaultCompression
	}
	if cfg.MinLength <= 0 {
		cfg.MinLength = DefaultBrotliConfig.MinLength
	}
	if len(cfg.ContentTypes) == 0 {
		cfg.ContentTypes = DefaultBrotliConfig.ContentTypes
	}

	return func(c *gin.Context) {
		if c.Request.Method == http.MethodHead || !acceptsBrotli(c.Request) {
			c.Next()
			return
		}

		c.Header("Vary", "Accept-Encoding")

		bw := &brotliWriter{ResponseWriter: c.Writer, cfg: &cfg}
		c.Writer = bw
		defer func() {
			if err := bw.finish(); err != nil {
				_ = c.Error(err)
			}
			c.Writer = bw.ResponseWriter
		}()

		c.Next()
	}
}

func acceptsBrotli(r *http.Request) bool {
	ae := r.Header.Get("Accept-Encoding")
	for _, enc := range strings.Split(ae, ",") {
		name, _, _ := strings.Cut(strings.TrimSpace(enc), ";")
		if strings.EqualFold(name, "br") {
			return true
		}
	}
	return false
}
