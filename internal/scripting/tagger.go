package scripting

import (
	lua "github.com/yuin/gopher-lua"
)

// TagRoomHook is the Lua global called for every randomly placed room.
const TagRoomHook = "tag_room"

// RoomInfo is a snapshot of a placed room passed to tag_room.
type RoomInfo struct {
	Index  int
	StartX int
	StartZ int
	Width  int
	Depth  int
	Tag    string
}

// TagRoom calls tag_room(room) in setID's VM. room is a table with the fields
// index, x, z, width, depth and tag.
//
// Postcondition: Returns the hook's result when it is a non-empty string,
// otherwise "" (no hook, runtime error or any other return value).
func (m *Manager) TagRoom(setID string, room RoomInfo) string {
	ret, err := m.callHook(setID, TagRoomHook, func(L *lua.LState) []lua.LValue {
		t := L.NewTable()
		L.SetField(t, "index", lua.LNumber(room.Index))
		L.SetField(t, "x", lua.LNumber(room.StartX))
		L.SetField(t, "z", lua.LNumber(room.StartZ))
		L.SetField(t, "width", lua.LNumber(room.Width))
		L.SetField(t, "depth", lua.LNumber(room.Depth))
		L.SetField(t, "tag", lua.LString(room.Tag))
		return []lua.LValue{t}
	})
	if err != nil {
		return ""
	}
	if s, ok := ret.(lua.LString); ok {
		return string(s)
	}
	return ""
}
