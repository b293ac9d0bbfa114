package flow

import "errors"

// ErrNodeNotFound is returned when a node ID cannot be found in the model.
var ErrNodeNotFound = errors.New("node not found")

// ErrNodeExists is returned when creating or renaming would collide with an
// existing node ID.
var ErrNodeExists = errors.New("node id already exists")

// ErrEmptyID is returned when an operation receives a blank node ID.
var ErrEmptyID = errors.New("node id cannot be empty")

// ErrCampaignNotFound is returned when a campaign document cannot be found
// in the store.
var ErrCampaignNotFound = errors.New("campaign not found")
