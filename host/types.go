package host

// PluginID identifies a plugin loaded by the simulator. IDs are assigned by
// the host process; negative values mean "no plugin".
type PluginID int32

// NoPlugin is the ID the simulator uses for "no such plugin". Sending a
// message to NoPlugin broadcasts it to every enabled plugin.
const NoPlugin PluginID = -1

// Valid reports whether the ID refers to an actual plugin.
func (id PluginID) Valid() bool { return id >= 0 }

// Opaque handles issued by the simulator. The host owns their lifetime; the
// wrapper only stores and forwards them. Zero is never a valid handle.
type (
	// MenuID addresses a menu created by, or exposed to, this plugin.
	MenuID uintptr
	// CommandRef addresses a named command.
	CommandRef uintptr
	// DataRef addresses a published data accessor.
	DataRef uintptr
	// FlightLoopID addresses a registered flight-loop callback.
	FlightLoopID uintptr
)

// DataTypeFlags is the bitmask of value types a data accessor supports.
// Accessors frequently publish more than one type (Float|Double is common).
type DataTypeFlags int32

const (
	TypeUnknown    DataTypeFlags = 0
	TypeInt        DataTypeFlags = 1 << 0
	TypeFloat      DataTypeFlags = 1 << 1
	TypeDouble     DataTypeFlags = 1 << 2
	TypeFloatArray DataTypeFlags = 1 << 3
	TypeIntArray   DataTypeFlags = 1 << 4
	TypeData       DataTypeFlags = 1 << 5
)

// Has reports whether the mask contains every bit of t.
func (f DataTypeFlags) Has(t DataTypeFlags) bool { return f&t == t }

func (f DataTypeFlags) String() string {
	if f == TypeUnknown {
		return "unknown"
	}
	names := []struct {
		bit  DataTypeFlags
		name string
	}{
		{TypeInt, "int"},
		{TypeFloat, "float"},
		{TypeDouble, "double"},
		{TypeFloatArray, "float[]"},
		{TypeIntArray, "int[]"},
		{TypeData, "data"},
	}
	out := ""
	for _, n := range names {
		if f.Has(n.bit) {
			if out != "" {
				out += "|"
			}
			out += n.name
		}
	}
	return out
}

// MenuCheck is the check-mark state of a menu item.
type MenuCheck int32

const (
	MenuNoCheck   MenuCheck = 0
	MenuUnchecked MenuCheck = 1
	MenuChecked   MenuCheck = 2
)

// CommandPhase tells a command handler where in the press/hold/release
// cycle the command currently is.
type CommandPhase int32

const (
	CommandBegin    CommandPhase = 0
	CommandContinue CommandPhase = 1
	CommandEnd      CommandPhase = 2
)

func (p CommandPhase) String() string {
	switch p {
	case CommandBegin:
		return "begin"
	case CommandContinue:
		return "continue"
	case CommandEnd:
		return "end"
	default:
		return "unknown"
	}
}

// FlightLoopPhase selects whether a flight-loop callback runs before or
// after the simulator integrates the flight model.
type FlightLoopPhase int32

const (
	BeforeFlightModel FlightLoopPhase = 0
	AfterFlightModel  FlightLoopPhase = 1
)

// PluginDetails is the descriptive record the host keeps for each plugin.
type PluginDetails struct {
	Name        string
	FilePath    string
	Signature   string
	Description string
}

// HostApp identifies which application is hosting the plugin.
type HostApp int32

const (
	HostUnknown HostApp = 0
	HostXPlane  HostApp = 1
)

// Versions reports the revisions of the simulator, the plugin ABI it
// exposes, and which host application is running.
type Versions struct {
	XPlane int32
	XPLM   int32
	HostID HostApp
}

// Language is the localization the simulator is running in.
type Language int32

const (
	LangUnknown Language = iota
	LangEnglish
	LangFrench
	LangGerman
	LangItalian
	LangSpanish
	LangKorean
	LangRussian
	LangGreek
	LangJapanese
	LangChinese
	LangUkrainian
)

// PathKind names the well-known directories a plugin can ask the host for.
type PathKind int32

const (
	// PathSystem is the simulator's installation root.
	PathSystem PathKind = iota
	// PathPrefs is a file path inside the preferences directory.
	PathPrefs
)

// DataFileKind selects which kind of data file to load or save.
type DataFileKind int32

const (
	DataFileSituation   DataFileKind = 1
	DataFileReplayMovie DataFileKind = 2
)

// Raw callback signatures at the host seam. The bridge behind the build tag
// converts these to and from C function pointers with refcons; a simulated
// host stores and calls them directly.
type (
	// MenuFunc receives the item token given to AppendMenuItem when the
	// user picks that item.
	MenuFunc func(item uintptr)

	// CommandFunc handles one phase of a command. The return value is
	// forwarded to the host: 0 inhibits further processing of this
	// command, 1 lets the simulator and later handlers see it too.
	CommandFunc func(phase CommandPhase) int

	// FlightLoopFunc runs inside the host's own loop. The return value is
	// the continuation: >0 seconds until the next call, <0 a number of
	// loop iterations, 0 to stop receiving calls.
	FlightLoopFunc func(sinceLastCall, sinceLastLoop float32, counter int32) float32

	// ErrorFunc receives programming-error diagnostics from the host.
	ErrorFunc func(msg string)
)

// HandlerToken identifies one registered command handler so it can be
// removed again. Tokens are only meaningful to the host that issued them.
type HandlerToken uintptr

// DataRefMeta is the descriptive record for a published data accessor.
type DataRefMeta struct {
	Name     string
	Types    DataTypeFlags
	Writable bool
	Owner    PluginID
}
