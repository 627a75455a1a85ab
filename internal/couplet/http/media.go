package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/aussiebroadwan/couplet/internal/couplet/blob"
	"github.com/aussiebroadwan/couplet/pkg/coupletsdk"
	"github.com/aussiebroadwan/couplet/pkg/httpx"
	"github.com/aussiebroadwan/couplet/pkg/slogx"
)

// MediaHandler godoc
//
//	@Summary		Media
//	@Description	Serves uploaded files such as avatars. Paths are immutable so responses are cacheable.
//	@Tags			Media
//	@Produce		octet-stream
//	@Param			path	path	string	true	"Blob path"
//	@Success		200
//	@Failure		404	{object}	coupletsdk.ErrorResponse	"not_found"
//	@Router			/media/{path} [get].
func MediaHandler(blobs *blob.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, info, err := blobs.Open(r.Context(), r.PathValue("path"))
		if err != nil {
			if errors.Is(err, blob.ErrNotFound) || errors.Is(err, blob.ErrInvalidPath) {
				httpx.WriteError(w, http.StatusNotFound, coupletsdk.ErrorCodeNotFound, "No such file", nil)
				return
			}
			slogx.FromContext(r.Context()).Error("failed to read blob", "err", err)
			httpx.WriteError(w, http.StatusInternalServerError, coupletsdk.ErrorCodeServerError, "Failed to read file", nil)
			return
		}

		w.Header().Set("Content-Type", info.ContentType)
		w.Header().Set("Content-Length", strconv.Itoa(len(data)))
		w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}
