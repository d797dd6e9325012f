package render

import (
	"testing"

	"github.com/chromedp/cdproto/network"
)

func TestUserAgentRotation(t *testing.T) {
	t.Parallel()

	pool := []string{"agent-a", "agent-b", "agent-c"}
	r := NewRenderer(WithUserAgents(pool))
	defer r.Close()

	for i := 0; i < 7; i++ {
		want := pool[i%len(pool)]
		if got := r.nextUserAgent(); got != want {
			t.Fatalf("nextUserAgent() call %d = %q, want %q", i, got, want)
		}
	}
}

func TestDefaultUserAgentPool(t *testing.T) {
	t.Parallel()

	r := NewRenderer()
	defer r.Close()

	if len(r.userAgents) != 3 {
		t.Errorf("default pool size = %d, want 3", len(r.userAgents))
	}
	seen := make(map[string]bool)
	for range r.userAgents {
		seen[r.nextUserAgent()] = true
	}
	if len(seen) != len(r.userAgents) {
		t.Errorf("rotation produced %d distinct agents, want %d", len(seen), len(r.userAgents))
	}
}

func TestBlockedResourceTypes(t *testing.T) {
	t.Parallel()

	blocked := []network.ResourceType{
		network.ResourceTypeImage,
		network.ResourceTypeMedia,
		network.ResourceTypeFont,
		network.ResourceTypeStylesheet,
		network.ResourceTypeOther,
	}
	for _, rt := range blocked {
		if !blockedResourceTypes[rt] {
			t.Errorf("resource type %s not blocked", rt)
		}
	}

	allowed := []network.ResourceType{
		network.ResourceTypeDocument,
		network.ResourceTypeScript,
		network.ResourceTypeXHR,
		network.ResourceTypeFetch,
		network.ResourceTypeWebSocket,
	}
	for _, rt := range allowed {
		if blockedResourceTypes[rt] {
			t.Errorf("resource type %s blocked, want allowed", rt)
		}
	}
}
