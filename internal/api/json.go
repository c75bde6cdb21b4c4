//spellchecker:words api
package api

//spellchecker:words encoding json errors http github crosswalk assoc gorilla
import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/FAU-CDI/crosswalk/pkg/assoc"
	"github.com/gorilla/mux"
)

// Pair is the request body for creating an association.
type Pair struct {
	Primary  string `json:"primary"`
	External string `json:"external"`
}

// writeError writes err to w, distinguishing validation failures from
// backend failures.
func (api *API) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, assoc.ErrNoScope), errors.Is(err, assoc.ErrNoPrimary), errors.Is(err, assoc.ErrNoExternal):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		api.Status.LogError("backend", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func (api *API) jsonExternalByPrimary(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	external, ok, err := api.Store.ExternalByPrimary(vars["scope"], vars["id"])
	if err != nil {
		api.writeError(w, err)
		return
	}
	if !ok {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(external)
}

func (api *API) jsonPrimaryByExternal(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	primary, ok, err := api.Store.PrimaryByExternal(vars["scope"], vars["id"])
	if err != nil {
		api.writeError(w, err)
		return
	}
	if !ok {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(primary)
}

func (api *API) jsonSave(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var pair Pair
	if err := json.NewDecoder(r.Body).Decode(&pair); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := api.Store.Save(vars["scope"], pair.Primary, pair.External); err != nil {
		api.writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (api *API) jsonDeletePair(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	removed, err := api.Store.DeletePair(vars["scope"], vars["primary"], vars["external"])
	if err != nil {
		api.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(removed)
}

func (api *API) jsonDeleteScope(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	removed, err := api.Store.DeleteScope(vars["scope"])
	if err != nil {
		api.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(removed)
}
