package xplmtest

import "github.com/xplm-go/xplm/host"

type simMenu struct {
	id        host.MenuID
	name      string
	fn        host.MenuFunc
	items     []*simMenuItem
	destroyed bool
	builtin   bool
}

type simMenuItem struct {
	text      string
	token     uintptr
	cmd       host.CommandRef
	separator bool
	check     host.MenuCheck
	disabled  bool
}

func (s *Sim) menuByID(id host.MenuID) *simMenu {
	for _, m := range s.menus {
		if m.id == id && !m.destroyed {
			return m
		}
	}
	return nil
}

// MenuID locates a live menu by the name it was created under.
func (s *Sim) MenuID(name string) (host.MenuID, bool) {
	for _, m := range s.menus {
		if m.name == name && !m.destroyed {
			return m.id, true
		}
	}
	return 0, false
}

// OpenMenus reports how many plugin-created menus have not been destroyed.
// The built-in plugins and aircraft menus are not counted.
func (s *Sim) OpenMenus() int {
	n := 0
	for _, m := range s.menus {
		if !m.builtin && !m.destroyed {
			n++
		}
	}
	return n
}

// MenuItems returns the current item texts of a menu, separators included
// as empty strings.
func (s *Sim) MenuItems(id host.MenuID) []string {
	m := s.menuByID(id)
	if m == nil {
		return nil
	}
	out := make([]string, len(m.items))
	for i, it := range m.items {
		if !it.separator {
			out[i] = it.text
		}
	}
	return out
}

// ChooseMenuItem simulates the user picking item index in a menu: the
// menu's callback receives the item's token, and an item attached to a
// command triggers that command instead.
func (s *Sim) ChooseMenuItem(id host.MenuID, index int) {
	m := s.menuByID(id)
	if m == nil || index < 0 || index >= len(m.items) {
		s.fatalf("ChooseMenuItem: no item %d in menu %#x", index, id)
		return
	}
	it := m.items[index]
	if it.separator || it.disabled {
		return
	}
	if it.cmd != 0 {
		s.CommandOnce(it.cmd)
		return
	}
	if m.fn != nil {
		m.fn(it.token)
	}
}

// PluginsMenu implements host.MenuAPI.
func (s *Sim) PluginsMenu() host.MenuID { return s.menus[0].id }

// AircraftMenu implements host.MenuAPI.
func (s *Sim) AircraftMenu() host.MenuID { return s.menus[1].id }

// CreateMenu implements host.MenuAPI.
func (s *Sim) CreateMenu(name string, parentMenu host.MenuID, parentItem int, fn host.MenuFunc) host.MenuID {
	if parentMenu != 0 {
		parent := s.menuByID(parentMenu)
		if parent == nil || parentItem < 0 || parentItem >= len(parent.items) {
			return 0
		}
	}
	m := &simMenu{id: host.MenuID(s.nextMenuID), name: name, fn: fn}
	s.nextMenuID++
	s.menus = append(s.menus, m)
	return m.id
}

// DestroyMenu implements host.MenuAPI.
func (s *Sim) DestroyMenu(menu host.MenuID) {
	if m := s.menuByID(menu); m != nil && !m.builtin {
		m.destroyed = true
		m.items = nil
	}
}

// ClearAllMenuItems implements host.MenuAPI.
func (s *Sim) ClearAllMenuItems(menu host.MenuID) {
	if m := s.menuByID(menu); m != nil {
		m.items = nil
	}
}

// AppendMenuItem implements host.MenuAPI.
func (s *Sim) AppendMenuItem(menu host.MenuID, text string, item uintptr) int {
	m := s.menuByID(menu)
	if m == nil {
		return -1
	}
	m.items = append(m.items, &simMenuItem{text: text, token: item})
	return len(m.items) - 1
}

// AppendMenuItemWithCommand implements host.MenuAPI.
func (s *Sim) AppendMenuItemWithCommand(menu host.MenuID, text string, cmd host.CommandRef) int {
	m := s.menuByID(menu)
	if m == nil || s.commandByHandle(cmd) == nil {
		return -1
	}
	m.items = append(m.items, &simMenuItem{text: text, cmd: cmd})
	return len(m.items) - 1
}

// AppendMenuSeparator implements host.MenuAPI.
func (s *Sim) AppendMenuSeparator(menu host.MenuID) {
	if m := s.menuByID(menu); m != nil {
		m.items = append(m.items, &simMenuItem{separator: true})
	}
}

// SetMenuItemName implements host.MenuAPI.
func (s *Sim) SetMenuItemName(menu host.MenuID, index int, text string) {
	if it := s.itemAt(menu, index); it != nil {
		it.text = text
	}
}

// CheckMenuItem implements host.MenuAPI.
func (s *Sim) CheckMenuItem(menu host.MenuID, index int, check host.MenuCheck) {
	if it := s.itemAt(menu, index); it != nil {
		it.check = check
	}
}

// MenuItemCheckState implements host.MenuAPI.
func (s *Sim) MenuItemCheckState(menu host.MenuID, index int) host.MenuCheck {
	if it := s.itemAt(menu, index); it != nil {
		return it.check
	}
	return host.MenuNoCheck
}

// EnableMenuItem implements host.MenuAPI.
func (s *Sim) EnableMenuItem(menu host.MenuID, index int, enabled bool) {
	if it := s.itemAt(menu, index); it != nil {
		it.disabled = !enabled
	}
}

// RemoveMenuItem implements host.MenuAPI. Items after the removed one
// shift down by one, as in the real host.
func (s *Sim) RemoveMenuItem(menu host.MenuID, index int) {
	m := s.menuByID(menu)
	if m == nil || index < 0 || index >= len(m.items) {
		return
	}
	m.items = append(m.items[:index], m.items[index+1:]...)
}

func (s *Sim) itemAt(menu host.MenuID, index int) *simMenuItem {
	m := s.menuByID(menu)
	if m == nil || index < 0 || index >= len(m.items) {
		return nil
	}
	return m.items[index]
}
