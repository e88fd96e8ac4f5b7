package panel

import (
	"sync"
	"testing"
)

func TestCoordinator_ActivateClosesPrevious(t *testing.T) {
	c := NewCoordinator()

	if closed := c.Activate("s1", "filter-dropdown"); closed != "" {
		t.Errorf("first Activate() closed = %q, want empty", closed)
	}
	if closed := c.Activate("s1", "mini-cart"); closed != "filter-dropdown" {
		t.Errorf("Activate() closed = %q, want filter-dropdown", closed)
	}
	if got := c.Active("s1"); got != "mini-cart" {
		t.Errorf("Active() = %q, want mini-cart", got)
	}
}

func TestCoordinator_ActivateSamePanelIsNoop(t *testing.T) {
	c := NewCoordinator()

	c.Activate("s1", "mini-cart")
	if closed := c.Activate("s1", "mini-cart"); closed != "" {
		t.Errorf("repeated Activate() closed = %q, want empty", closed)
	}
	if !c.IsActive("s1", "mini-cart") {
		t.Error("IsActive() = false after repeated Activate, want true")
	}
}

func TestCoordinator_ActivateEmptyPanelIsNoop(t *testing.T) {
	c := NewCoordinator()

	c.Activate("s1", "menu")
	if closed := c.Activate("s1", ""); closed != "" {
		t.Errorf("Activate() with empty panel closed = %q, want empty", closed)
	}
	if got := c.Active("s1"); got != "menu" {
		t.Errorf("Active() = %q, want menu", got)
	}
}

func TestCoordinator_Deactivate(t *testing.T) {
	c := NewCoordinator()

	c.Activate("s1", "menu")
	if !c.Deactivate("s1", "menu") {
		t.Error("Deactivate() = false for open panel, want true")
	}
	if got := c.Active("s1"); got != "" {
		t.Errorf("Active() = %q after Deactivate, want empty", got)
	}

	// 关闭未打开的浮层不生效
	c.Activate("s1", "menu")
	if c.Deactivate("s1", "mini-cart") {
		t.Error("Deactivate() = true for panel that is not open, want false")
	}
	if got := c.Active("s1"); got != "menu" {
		t.Errorf("Active() = %q, want menu", got)
	}
}

func TestCoordinator_DeactivateAll(t *testing.T) {
	c := NewCoordinator()

	c.Activate("s1", "menu")
	c.DeactivateAll("s1")
	if got := c.Active("s1"); got != "" {
		t.Errorf("Active() = %q after DeactivateAll, want empty", got)
	}
}

func TestCoordinator_SessionsAreIsolated(t *testing.T) {
	c := NewCoordinator()

	c.Activate("s1", "menu")
	c.Activate("s2", "mini-cart")

	if got := c.Active("s1"); got != "menu" {
		t.Errorf("Active(s1) = %q, want menu", got)
	}
	if got := c.Active("s2"); got != "mini-cart" {
		t.Errorf("Active(s2) = %q, want mini-cart", got)
	}

	c.DeactivateAll("s1")
	if got := c.Active("s2"); got != "mini-cart" {
		t.Errorf("Active(s2) = %q after other session reset, want mini-cart", got)
	}
}

func TestCoordinator_ConcurrentAccess(t *testing.T) {
	c := NewCoordinator()
	panels := []string{"menu", "mini-cart", "filter-dropdown"}

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			c.Activate("s1", panels[i%len(panels)])
			c.Active("s1")
		}(i)
	}
	wg.Wait()

	// 并发激活后最多只有一个浮层处于打开状态
	open := 0
	for _, p := range panels {
		if c.IsActive("s1", p) {
			open++
		}
	}
	if open > 1 {
		t.Errorf("%d panels open at once, want at most 1", open)
	}
}
