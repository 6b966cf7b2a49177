// Package driver defines the rendering driver contract resources commit
// their data to, and Memory, an in-process implementation used by the
// server and by tests.
//
// Memory keeps every handle it hands out, so leaked or doubly released
// handles show up in Stats and as ErrUnknownHandle.
package driver
