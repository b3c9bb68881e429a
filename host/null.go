package host

// nullHost answers for the gaps: before the bridge installs itself, or in
// binaries that never install a simulated host. Lookups miss, creations
// fail, everything else is a no-op. It exists so that library code can
// always call Active() without a nil check and so that nothing here can
// take the process down.
type nullHost struct{}

func (nullHost) MyID() PluginID                                  { return NoPlugin }
func (nullHost) CountPlugins() int                               { return 0 }
func (nullHost) NthPlugin(int) PluginID                          { return NoPlugin }
func (nullHost) FindPluginByPath(string) PluginID                { return NoPlugin }
func (nullHost) FindPluginBySignature(string) PluginID           { return NoPlugin }
func (nullHost) PluginDetails(PluginID) (PluginDetails, bool)    { return PluginDetails{}, false }
func (nullHost) IsPluginEnabled(PluginID) bool                   { return false }
func (nullHost) EnablePlugin(PluginID) bool                      { return false }
func (nullHost) DisablePlugin(PluginID)                          {}
func (nullHost) ReloadPlugins()                                  {}
func (nullHost) SendMessage(PluginID, int32, uintptr)            {}
func (nullHost) HasFeature(string) bool                          { return false }
func (nullHost) IsFeatureEnabled(string) bool                    { return false }
func (nullHost) EnableFeature(string, bool)                      {}
func (nullHost) PluginsMenu() MenuID                             { return 0 }
func (nullHost) AircraftMenu() MenuID                            { return 0 }
func (nullHost) CreateMenu(string, MenuID, int, MenuFunc) MenuID { return 0 }
func (nullHost) DestroyMenu(MenuID)                              {}
func (nullHost) ClearAllMenuItems(MenuID)                        {}
func (nullHost) AppendMenuItem(MenuID, string, uintptr) int      { return -1 }
func (nullHost) AppendMenuItemWithCommand(MenuID, string, CommandRef) int {
	return -1
}
func (nullHost) AppendMenuSeparator(MenuID)              {}
func (nullHost) SetMenuItemName(MenuID, int, string)     {}
func (nullHost) CheckMenuItem(MenuID, int, MenuCheck)    {}
func (nullHost) MenuItemCheckState(MenuID, int) MenuCheck {
	return MenuNoCheck
}
func (nullHost) EnableMenuItem(MenuID, int, bool)    {}
func (nullHost) RemoveMenuItem(MenuID, int)          {}
func (nullHost) FindCommand(string) CommandRef       { return 0 }
func (nullHost) CreateCommand(string, string) CommandRef {
	return 0
}
func (nullHost) CommandOnce(CommandRef)  {}
func (nullHost) CommandBegin(CommandRef) {}
func (nullHost) CommandEnd(CommandRef)   {}
func (nullHost) RegisterCommandHandler(CommandRef, bool, CommandFunc) HandlerToken {
	return 0
}
func (nullHost) UnregisterCommandHandler(HandlerToken)    {}
func (nullHost) FindDataRef(string) DataRef               { return 0 }
func (nullHost) IsDataRefGood(DataRef) bool               { return false }
func (nullHost) CanWriteDataRef(DataRef) bool             { return false }
func (nullHost) DataRefTypes(DataRef) DataTypeFlags       { return TypeUnknown }
func (nullHost) GetDatai(DataRef) int32                   { return 0 }
func (nullHost) SetDatai(DataRef, int32)                  {}
func (nullHost) GetDataf(DataRef) float32                 { return 0 }
func (nullHost) SetDataf(DataRef, float32)                {}
func (nullHost) GetDatad(DataRef) float64                 { return 0 }
func (nullHost) SetDatad(DataRef, float64)                {}
func (nullHost) GetDatavi(DataRef, []int32, int) int      { return 0 }
func (nullHost) SetDatavi(DataRef, []int32, int)          {}
func (nullHost) GetDatavf(DataRef, []float32, int) int    { return 0 }
func (nullHost) SetDatavf(DataRef, []float32, int)        {}
func (nullHost) GetDatab(DataRef, []byte, int) int        { return 0 }
func (nullHost) SetDatab(DataRef, []byte, int)            {}
func (nullHost) CountDataRefs() int                       { return 0 }
func (nullHost) DataRefsByIndex(int, int) []DataRef       { return nil }
func (nullHost) DataRefMeta(DataRef) (DataRefMeta, bool)  { return DataRefMeta{}, false }
func (nullHost) CreateFlightLoop(FlightLoopPhase, FlightLoopFunc) FlightLoopID {
	return 0
}
func (nullHost) DestroyFlightLoop(FlightLoopID)                {}
func (nullHost) ScheduleFlightLoop(FlightLoopID, float32, bool) {}
func (nullHost) ElapsedTime() float32                          { return 0 }
func (nullHost) CycleNumber() int32                            { return 0 }
func (nullHost) PathLength(PathKind) int                       { return 0 }
func (nullHost) ReadPath(PathKind, []byte) int                 { return 0 }
func (nullHost) DirectorySeparator() string                    { return "/" }
func (nullHost) DebugString(string)                            {}
func (nullHost) SpeakString(string)                            {}
func (nullHost) Versions() Versions                            { return Versions{} }
func (nullHost) Language() Language                            { return LangUnknown }
func (nullHost) LoadDataFile(DataFileKind, string) bool        { return false }
func (nullHost) SaveDataFile(DataFileKind, string) bool        { return false }
func (nullHost) ReloadScenery()                                {}
func (nullHost) SetErrorCallback(ErrorFunc)                    {}
func (nullHost) VirtualKeyDescription(byte) string             { return "" }
