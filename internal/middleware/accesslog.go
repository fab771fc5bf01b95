package middleware

import (
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/yanizio/newsroom/internal/requestinfo"
	"github.com/yanizio/newsroom/internal/tenant"
)

// AccessLog writes one structured line per request.  It expects
// requestinfo.Enrich and the edge rewriter to have run; missing values are
// simply omitted.
func AccessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		fields := []zap.Field{
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", status),
			zap.Int("bytes", ww.BytesWritten()),
			zap.Duration("took", time.Since(start)),
		}
		if id := chimw.GetReqID(r.Context()); id != "" {
			fields = append(fields, zap.String("req_id", id))
		}
		if e := tenant.EdgeFrom(r.Context()); e != nil {
			fields = append(fields,
				zap.String("domain", e.Domain.String()),
				zap.String("uri", e.OriginalURI))
		}
		if ri := requestinfo.FromContext(r.Context()); ri != nil {
			fields = append(fields,
				zap.Stringer("ip", ri.Geo.IP),
				zap.String("country", ri.Geo.CountryISO),
				zap.String("browser", ri.UA.Browser),
				zap.String("device", ri.UA.Device),
				zap.Bool("bot", ri.UA.IsBot))
		}
		zap.L().Info("http", fields...)
	})
}
