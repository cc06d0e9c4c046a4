package types

import (
    "net/http"

    appErr "github.com/nexusnova/atlas/pkg/errors"
)

func FromAppError(err error) *APIError {
    if err == nil {
        return nil
    }
    code := string(appErr.CodeUnknown)
    if e, ok := err.(*appErr.AppError); ok {
        code = string(e.Code)
        return &APIError{Code: code, Message: e.Message}
    }
    return &APIError{Code: code, Message: err.Error()}
}

// StatusFor maps an error code to the HTTP status the envelope rides on.
// Every domain rejection is a recovered, non-fatal response.
func StatusFor(err error) int {
    switch appErr.CodeOf(err) {
    case appErr.CodeNotFound:
        return http.StatusNotFound
    case appErr.CodeConflict, appErr.CodeDuplicateNodeID, appErr.CodeDuplicateFeatureSet:
        return http.StatusConflict
    case appErr.CodeInvalid, appErr.CodeInvalidNode, appErr.CodeUnknownNodeType,
        appErr.CodeInvalidEdge, appErr.CodeUnknownVerb, appErr.CodeDanglingEndpoint,
        appErr.CodeInvalidImport, appErr.CodeUnknownViewMode:
        return http.StatusBadRequest
    default:
        return http.StatusInternalServerError
    }
}
