package plugin

import "github.com/xplm-go/xplm/host"

// Simulator-originated message identifiers, delivered with From == NoPlugin.
// The meaning of Param varies per message; for the plane messages it carries
// the aircraft index, with 0 being the user's aircraft.
const (
	MsgPlaneCrashed         int32 = 101
	MsgPlaneLoaded          int32 = 102
	MsgAirportLoaded        int32 = 103
	MsgSceneryLoaded        int32 = 104
	MsgAirplaneCountChanged int32 = 105
	MsgPlaneUnloaded        int32 = 106
	MsgWillWritePrefs       int32 = 107
	MsgLiveryLoaded         int32 = 108
	MsgEnteredVR            int32 = 109
	MsgExitingVR            int32 = 110
	MsgReleasePlanes        int32 = 111
	MsgDatarefsAdded        int32 = 114
)

// Message is an interplugin message as delivered to MessageHandler.
type Message struct {
	// From identifies the sender, or NoPlugin when the simulator itself
	// originated the message.
	From ID
	// ID tells the receiver how to interpret Param. Identifiers below 111
	// are reserved for the simulator; plugins exchanging private messages
	// should pick identifiers unlikely to collide, conventionally derived
	// from a hash of the signature.
	ID int32
	// Param is a message-defined payload. When plugins in the same process
	// exchange pointers here, the pointee must not be retained past the
	// callback.
	Param uintptr
}

// Send delivers a message to a single plugin. Sending to a disabled plugin
// is a no-op.
func Send(to ID, msg int32, param uintptr) {
	host.Active().SendMessage(to, msg, param)
}

// Broadcast delivers a message to every enabled plugin except the sender.
func Broadcast(msg int32, param uintptr) {
	host.Active().SendMessage(NoPlugin, msg, param)
}
