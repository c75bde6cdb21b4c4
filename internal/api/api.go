// Package api provides an [http.Handler] exposing an association store as a JSON API.
package api

//spellchecker:words http sync github crosswalk assoc internal status gorilla
import (
	"net/http"
	"sync"

	"github.com/FAU-CDI/crosswalk/internal/status"
	"github.com/FAU-CDI/crosswalk/pkg/assoc"
	"github.com/gorilla/mux"
)

// API implements an [http.Handler] that exposes the operations of an
// association store under "/api/v1".
type API struct {
	Store  *assoc.Store
	Status *status.Status

	init sync.Once
	mux  mux.Router
}

// Prepare registers all routes on the underlying router.
// It is called automatically on the first request.
func (api *API) Prepare() {
	api.init.Do(func() {
		api.mux.HandleFunc("/api/v1/{scope}/primary/{id}", api.jsonExternalByPrimary).Methods(http.MethodGet)
		api.mux.HandleFunc("/api/v1/{scope}/external/{id}", api.jsonPrimaryByExternal).Methods(http.MethodGet)

		api.mux.HandleFunc("/api/v1/{scope}", api.jsonSave).Methods(http.MethodPost)
		api.mux.HandleFunc("/api/v1/{scope}", api.jsonDeletePair).Methods(http.MethodDelete).Queries("primary", "{primary:.+}", "external", "{external:.+}")
		api.mux.HandleFunc("/api/v1/{scope}", api.jsonDeleteScope).Methods(http.MethodDelete)
	})
}

func (api *API) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	api.Prepare()
	api.mux.ServeHTTP(w, r)
}

func (api *API) Close() error {
	if api == nil {
		return nil
	}
	return api.Store.Close()
}
