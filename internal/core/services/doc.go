// Package services implements the driving port interfaces.
// Services contain the workspace engine: the slide deck, the file change
// poller, the canvas view state and the coordinator that ties selection
// to content loading.
//
// Services are pure Go with no CGO dependencies.
package services
