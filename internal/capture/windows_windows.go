//go:build windows
// +build windows

package capture

import (
	"fmt"
	"sort"
	"syscall"
	"unsafe"

	"jordanella.com/market-sniper-go/internal/frame"
)

var (
	procEnumWindows      = user32.NewProc("EnumWindows")
	procIsWindowVisible  = user32.NewProc("IsWindowVisible")
	procGetWindowTextW   = user32.NewProc("GetWindowTextW")
	procGetWindowTextLen = user32.NewProc("GetWindowTextLengthW")
	procFindWindowW      = user32.NewProc("FindWindowW")
	procGetWindowRect    = user32.NewProc("GetWindowRect")
)

// ListWindows enumerates the titles of visible top-level windows for
// capture-target selection. Shell surfaces are excluded; the result is
// sorted and deduplicated.
func ListWindows() []string {
	seen := make(map[string]bool)
	var titles []string

	callback := syscall.NewCallback(func(hwnd uintptr, lparam uintptr) uintptr {
		visible, _, _ := procIsWindowVisible.Call(hwnd)
		if visible == 0 {
			return 1 // continue enumeration
		}

		length, _, _ := procGetWindowTextLen.Call(hwnd)
		if length == 0 {
			return 1
		}

		buf := make([]uint16, length+1)
		procGetWindowTextW.Call(hwnd, uintptr(unsafe.Pointer(&buf[0])), uintptr(len(buf)))
		title := syscall.UTF16ToString(buf)

		if title == "" || title == "Program Manager" || title == "Settings" {
			return 1
		}
		if !seen[title] {
			seen[title] = true
			titles = append(titles, title)
		}
		return 1
	})

	procEnumWindows.Call(callback, 0)
	sort.Strings(titles)
	return titles
}

type windowRect struct {
	Left, Top, Right, Bottom int32
}

// ResolveWindowRegion looks up a window by exact title and returns its
// screen bounds as a capture region.
func ResolveWindowRegion(title string) (frame.Region, error) {
	titlePtr, err := syscall.UTF16PtrFromString(title)
	if err != nil {
		return frame.Region{}, fmt.Errorf("failed to encode window title: %w", err)
	}

	hwnd, _, _ := procFindWindowW.Call(0, uintptr(unsafe.Pointer(titlePtr)))
	if hwnd == 0 {
		return frame.Region{}, fmt.Errorf("window not found: %q", title)
	}

	var r windowRect
	ret, _, _ := procGetWindowRect.Call(hwnd, uintptr(unsafe.Pointer(&r)))
	if ret == 0 {
		return frame.Region{}, fmt.Errorf("failed to read bounds of window %q", title)
	}

	region := frame.Region{
		X:      int(r.Left),
		Y:      int(r.Top),
		Width:  int(r.Right - r.Left),
		Height: int(r.Bottom - r.Top),
	}
	if region.Width <= 0 || region.Height <= 0 {
		return frame.Region{}, fmt.Errorf("window %q has empty bounds", title)
	}
	return region, nil
}
