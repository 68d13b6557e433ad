package contracts

import "github.com/julienschmidt/httprouter"

// Handler is implemented by every component that serves HTTP routes: the
// asset API, the health probes and the metrics endpoint.
type Handler interface {
	RegisterRoutes(*httprouter.Router)
}
