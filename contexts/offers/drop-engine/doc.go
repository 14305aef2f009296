// Package dropengine contains the Dropspot drop engine: geofenced drop
// lifecycle, waitlists, and the claim approval workflow.
//
// The module keeps domain/application logic decoupled from runtime/platform
// concerns through ports and adapter composition.
package dropengine
