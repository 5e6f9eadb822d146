package rest

import (
	"context"
	"net/http"

	"defilend/core"
	"defilend/handler/param"
	"defilend/handler/render"
	"defilend/handler/views"

	"github.com/asaskevich/govalidator"
	"github.com/twitchtv/twirp"
)

type actionFunc func(ctx context.Context, req *core.LedgerRequest) (*core.Receipt, error)

func actionHandler(apply actionFunc, decimals int32) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params struct {
			User    string `json:"user" valid:"required"`
			Amount  uint64 `json:"amount"`
			TraceID string `json:"trace_id"`
		}

		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		if params.TraceID != "" && !govalidator.IsUUID(params.TraceID) {
			render.Error(w, twirp.InvalidArgumentError("trace_id", "must be a uuid"))
			return
		}

		receipt, err := apply(r.Context(), &core.LedgerRequest{
			TraceID: params.TraceID,
			UserID:  params.User,
			Amount:  params.Amount,
		})
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, views.ReceiptView(receipt, decimals))
	}
}
