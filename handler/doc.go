// Package handler provides typed HTTP handlers for server-rendered pages.
//
// A handler receives a Context and a request struct filled by one or more
// Bind functions, and returns a Response:
//
//	type DeleteRequest struct {
//		ReviewID string `param:"reviewId"`
//	}
//
//	func (h *Handler) delete(ctx handler.Context, req DeleteRequest) handler.Response {
//		if err := h.svc.Delete(ctx, req.ReviewID); err != nil {
//			return handler.Error(err)
//		}
//		return handler.Redirect("/account_reviewlist")
//	}
//
//	r.Post("/delete", handler.Wrap(h.delete,
//		handler.WithBinders[handler.Context, DeleteRequest](params.Bind()),
//	))
//
// Responses adapt to DataStar requests (see IsDataStar): Templ sends an
// element patch over server-sent events and Redirect sends a client-side
// redirect. Regular requests get HTML and HTTP redirects.
//
// Binding and rendering failures, and Error responses, go to the
// ErrorHandler. NewErrorHandler maps HTTPError values to their status code
// and renders an error page or toast.
package handler
