package types

import "github.com/nexusnova/atlas/internal/models"

type FeatureSetCreateRequest struct {
    Name string `json:"name" validate:"required"`
}

type CheckoutRequest struct {
    FeatureSet string `json:"feature_set" validate:"required"`
}

type EditingRequest struct {
    Editing bool `json:"editing"`
}

type NodeCreateRequest struct {
    ID            string          `json:"id" validate:"required"`
    Label         string          `json:"label"`
    Type          models.NodeType `json:"type" validate:"required"`
    Env           string          `json:"env"`
    ComponentType string          `json:"component_type"`
    Attrs         map[string]any  `json:"attrs"`
}

type EdgeCreateRequest struct {
    Src   string         `json:"src" validate:"required"`
    Dst   string         `json:"dst" validate:"required"`
    Verb  models.Verb    `json:"verb" validate:"required"`
    Attrs map[string]any `json:"attrs"`
}

// PickRequest mirrors the renderer selection contract; a null selection
// clears the pick.
type PickRequest struct {
    Selection *PickSelection `json:"selection"`
}

type PickSelection struct {
    Type string `json:"type" validate:"required,oneof=node edge"`
    Data any    `json:"data"`
}
