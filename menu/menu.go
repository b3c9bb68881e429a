// Package menu builds and maintains entries in the simulator's menu bar.
//
// A plugin typically creates one top-level menu at start and hangs items
// and submenus off it:
//
//	m, _ := menu.New("Fuel Watch")
//	m.AddItem("Show Warnings", func() { ... })
//	m.AddSeparator()
//	m.AddItemForCommand("Toggle", toggleCmd)
//
// The simulator renumbers menu rows when one is removed, so raw indices
// are only stable until the first removal. Items returned by the Add
// calls track their own row through removals; callers hold on to the
// *Item and never see an index. Menus and items created here are
// destroyed automatically when the plugin stops.
//
// Selection callbacks run on the simulator's main thread. A panic in one
// is recovered and logged; the simulator keeps running.
package menu

import (
	"errors"
	"fmt"

	"github.com/xplm-go/xplm/command"
	"github.com/xplm-go/xplm/host"
	"github.com/xplm-go/xplm/internal/cleanup"
	"github.com/xplm-go/xplm/logging"
)

// ErrDestroyed reports an operation on a menu that was destroyed or an
// item that was removed.
var ErrDestroyed = errors.New("menu destroyed")

// CheckState is the check mark beside a menu item.
type CheckState = host.MenuCheck

const (
	// NoCheck renders no check mark space at all.
	NoCheck = host.MenuNoCheck
	// Unchecked renders an empty check mark.
	Unchecked = host.MenuUnchecked
	// Checked renders a set check mark.
	Checked = host.MenuChecked
)

// Menu is one menu: the plugin's own, a submenu, or a wrapper around one
// of the simulator's built-in menus.
type Menu struct {
	id    host.MenuID
	name  string
	items []*Item

	nextToken uintptr
	byToken   map[uintptr]*Item

	// Where this menu hangs: an owned parent row for submenus, or a raw
	// row in a built-in menu for top-level menus.
	parentItem *Item
	rawParent  host.MenuID
	rawIndex   int

	builtin    bool
	destroyed  bool
	cleanupTok cleanup.Token

	log *logging.Logger
}

func newWrapper(id host.MenuID, name string, builtin bool) *Menu {
	return &Menu{
		id:      id,
		name:    name,
		builtin: builtin,
		byToken: make(map[uintptr]*Item),
		log:     logging.Sub("menu"),
	}
}

// Menus returns the simulator's plugins menu. Built-in menus accept
// submenus, separators, and command items, but not plain callback items:
// the simulator owns their selection handler, so callbacks attached there
// would never fire.
func Menus() *Menu {
	return newWrapper(host.Active().PluginsMenu(), "Plugins", true)
}

// AircraftMenu returns the menu of the currently loaded aircraft, false
// when the simulator does not expose it to this plugin.
func AircraftMenu() (*Menu, bool) {
	id := host.Active().AircraftMenu()
	if id == 0 {
		return nil, false
	}
	return newWrapper(id, "Aircraft", true), true
}

// New creates a top-level menu for this plugin inside the plugins menu.
func New(name string) (*Menu, error) {
	h := host.Active()
	parent := h.PluginsMenu()
	row := h.AppendMenuItem(parent, name, 0)
	if row < 0 {
		return nil, fmt.Errorf("menu %q: host refused the plugins-menu row", name)
	}
	m := newWrapper(0, name, false)
	m.id = h.CreateMenu(name, parent, row, m.dispatch)
	if m.id == 0 {
		h.RemoveMenuItem(parent, row)
		return nil, fmt.Errorf("menu %q: host refused to create", name)
	}
	m.rawParent = parent
	m.rawIndex = row
	m.cleanupTok = cleanup.Register(m.release)
	return m, nil
}

// Name returns the menu's title.
func (m *Menu) Name() string { return m.name }

func (m *Menu) guard() error {
	if m.destroyed {
		return fmt.Errorf("menu %q: %w", m.name, ErrDestroyed)
	}
	return nil
}

// dispatch is the host-side selection callback for menus this plugin
// owns.
func (m *Menu) dispatch(token uintptr) {
	defer logging.Catch(m.log, "menu "+m.name)
	it, ok := m.byToken[token]
	if !ok || it.removed || it.onSelect == nil {
		return
	}
	it.onSelect()
}

// Submenu appends a row that opens a new menu and returns that menu.
func (m *Menu) Submenu(text string) (*Menu, error) {
	if err := m.guard(); err != nil {
		return nil, err
	}
	h := host.Active()
	row := h.AppendMenuItem(m.id, text, 0)
	if row < 0 {
		return nil, fmt.Errorf("submenu %q: host refused the row", text)
	}
	it := &Item{menu: m, index: row, text: text, submenu: true}
	m.items = append(m.items, it)

	sub := newWrapper(0, text, false)
	sub.id = h.CreateMenu(text, m.id, row, sub.dispatch)
	if sub.id == 0 {
		_ = it.Remove()
		return nil, fmt.Errorf("submenu %q: host refused to create", text)
	}
	sub.parentItem = it
	sub.cleanupTok = cleanup.Register(sub.release)
	return sub, nil
}

// AddItem appends a selectable row. onSelect runs when the user picks
// it; it may be nil for a purely informational row.
func (m *Menu) AddItem(text string, onSelect func()) (*Item, error) {
	if err := m.guard(); err != nil {
		return nil, err
	}
	if m.builtin && onSelect != nil {
		return nil, fmt.Errorf("menu %q: built-in menus cannot dispatch callbacks, create a submenu", m.name)
	}
	m.nextToken++
	token := m.nextToken
	row := host.Active().AppendMenuItem(m.id, text, token)
	if row < 0 {
		return nil, fmt.Errorf("menu item %q: host refused the row", text)
	}
	it := &Item{menu: m, index: row, token: token, text: text, onSelect: onSelect}
	m.items = append(m.items, it)
	m.byToken[token] = it
	return it, nil
}

// AddItemForCommand appends a row that triggers cmd when picked, exactly
// as a key binding for it would. The simulator dispatches these itself,
// so they work in built-in menus too.
func (m *Menu) AddItemForCommand(text string, cmd *command.Command) (*Item, error) {
	if err := m.guard(); err != nil {
		return nil, err
	}
	if cmd == nil {
		return nil, errors.New("menu item: nil command")
	}
	row := host.Active().AppendMenuItemWithCommand(m.id, text, cmd.Ref())
	if row < 0 {
		return nil, fmt.Errorf("menu item %q: host refused the row", text)
	}
	it := &Item{menu: m, index: row, text: text}
	m.items = append(m.items, it)
	return it, nil
}

// AddSeparator appends a separator row.
func (m *Menu) AddSeparator() error {
	if err := m.guard(); err != nil {
		return err
	}
	host.Active().AppendMenuSeparator(m.id)
	it := &Item{menu: m, index: len(m.items), separator: true}
	m.items = append(m.items, it)
	return nil
}

// Items returns the menu's live items in row order.
func (m *Menu) Items() []*Item {
	out := make([]*Item, len(m.items))
	copy(out, m.items)
	return out
}

// Clear removes every row at once. Items previously returned by the Add
// calls are dead afterwards.
func (m *Menu) Clear() error {
	if err := m.guard(); err != nil {
		return err
	}
	host.Active().ClearAllMenuItems(m.id)
	for _, it := range m.items {
		it.removed = true
	}
	m.items = nil
	m.byToken = make(map[uintptr]*Item)
	return nil
}

// Destroy releases the menu and its row in the parent. The first call
// wins; operations on a destroyed menu, this one included, return
// ErrDestroyed. Built-in menus cannot be destroyed. Menus that are not
// destroyed explicitly are released when the plugin stops.
func (m *Menu) Destroy() error {
	if err := m.guard(); err != nil {
		return err
	}
	if m.builtin {
		return fmt.Errorf("menu %q: built-in menus cannot be destroyed", m.name)
	}
	cleanup.Forget(m.cleanupTok)
	m.release()
	return nil
}

// release tears the menu down; shared by Destroy and the stop-time
// cleanup registry.
func (m *Menu) release() {
	if m.destroyed {
		return
	}
	m.destroyed = true
	h := host.Active()
	h.DestroyMenu(m.id)
	switch {
	case m.parentItem != nil:
		if !m.parentItem.removed {
			_ = m.parentItem.Remove()
		}
	case m.rawParent != 0:
		h.RemoveMenuItem(m.rawParent, m.rawIndex)
	}
	for _, it := range m.items {
		it.removed = true
	}
	m.items = nil
}
