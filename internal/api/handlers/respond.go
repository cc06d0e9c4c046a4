package handlers

import (
    "encoding/json"
    "net/http"

    "github.com/go-playground/validator/v10"

    "github.com/nexusnova/atlas/internal/api/types"
    appErr "github.com/nexusnova/atlas/pkg/errors"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

func respond(w http.ResponseWriter, status int, data any) {
    w.Header().Set("Content-Type", "application/json")
    w.WriteHeader(status)
    _ = json.NewEncoder(w).Encode(types.APIResponse{Success: true, Data: data})
}

func respondErr(w http.ResponseWriter, err error) {
    w.Header().Set("Content-Type", "application/json")
    w.WriteHeader(types.StatusFor(err))
    _ = json.NewEncoder(w).Encode(types.APIResponse{Success: false, Error: types.FromAppError(err)})
}

func decode(r *http.Request, dst any) error {
    if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
        return appErr.Wrap(err, appErr.CodeInvalid, "invalid request body")
    }
    if err := validate.Struct(dst); err != nil {
        return appErr.Wrap(err, appErr.CodeInvalid, "invalid request body")
    }
    return nil
}
