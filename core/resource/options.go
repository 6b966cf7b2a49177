package resource

// Option customizes a factory request.
type Option func(*request)

type request struct {
	id    string
	rawID int
	data  any
}

func newRequest(opts []Option) request {
	req := request{rawID: NoRawID}
	for _, opt := range opts {
		opt(&req)
	}
	return req
}

// WithID sets an explicit identity. Requests with the same identity share one resource.
func WithID(id string) Option {
	return func(r *request) { r.id = id }
}

// WithRawID sets the raw storage id. Without WithID the identity becomes "genres_<rawID>".
func WithRawID(rawID int) Option {
	return func(r *request) { r.rawID = rawID }
}

// WithData passes opaque initialization data to the load callback.
func WithData(data any) Option {
	return func(r *request) { r.data = data }
}
