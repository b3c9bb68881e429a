package menu

import (
	"fmt"

	"github.com/xplm-go/xplm/host"
)

// Item is one row of a menu. Items keep track of their own row number as
// earlier rows come and go, so they stay valid until removed.
type Item struct {
	menu  *Menu
	index int
	token uintptr
	text  string

	onSelect func()

	separator bool
	submenu   bool
	removed   bool
}

func (i *Item) guard() error {
	if i.removed || i.menu.destroyed {
		return fmt.Errorf("menu item %q: %w", i.text, ErrDestroyed)
	}
	return nil
}

// Text returns the item's current label.
func (i *Item) Text() string { return i.text }

// SetText relabels the item.
func (i *Item) SetText(text string) error {
	if err := i.guard(); err != nil {
		return err
	}
	host.Active().SetMenuItemName(i.menu.id, i.index, text)
	i.text = text
	return nil
}

// Check sets the item's check mark.
func (i *Item) Check() error { return i.SetState(Checked) }

// Uncheck clears the item's check mark while keeping the mark space.
func (i *Item) Uncheck() error { return i.SetState(Unchecked) }

// SetState sets the check mark to an explicit state.
func (i *Item) SetState(state CheckState) error {
	if err := i.guard(); err != nil {
		return err
	}
	host.Active().CheckMenuItem(i.menu.id, i.index, state)
	return nil
}

// State reads the item's current check mark from the simulator.
func (i *Item) State() (CheckState, error) {
	if err := i.guard(); err != nil {
		return NoCheck, err
	}
	return host.Active().MenuItemCheckState(i.menu.id, i.index), nil
}

// Enable makes the item selectable.
func (i *Item) Enable() error { return i.setEnabled(true) }

// Disable grays the item out.
func (i *Item) Disable() error { return i.setEnabled(false) }

func (i *Item) setEnabled(on bool) error {
	if err := i.guard(); err != nil {
		return err
	}
	host.Active().EnableMenuItem(i.menu.id, i.index, on)
	return nil
}

// Remove deletes the row. The simulator renumbers all later rows; the
// wrapper renumbers its records to match, so other Items stay attached
// to the right rows. A removed item is dead: further use returns
// ErrDestroyed.
func (i *Item) Remove() error {
	if err := i.guard(); err != nil {
		return err
	}
	m := i.menu
	host.Active().RemoveMenuItem(m.id, i.index)
	for pos, it := range m.items {
		if it == i {
			m.items = append(m.items[:pos], m.items[pos+1:]...)
			break
		}
	}
	for _, it := range m.items {
		if it.index > i.index {
			it.index--
		}
	}
	if i.token != 0 {
		delete(m.byToken, i.token)
	}
	i.removed = true
	return nil
}
