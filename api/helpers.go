package api

import (
	"encoding/json"
	"net/http"

	"github.com/pkg/errors"
)

func sendJSON(w http.ResponseWriter, status int, obj interface{}) error {
	b, err := json.Marshal(obj)
	if err != nil {
		return errors.Wrapf(err, "Error encoding json response: %v", obj)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(b)
	return err
}
