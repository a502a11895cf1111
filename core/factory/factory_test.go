package factory

import (
	"errors"
	"testing"
	"time"
)

type sink struct {
	URL     string
	Timeout time.Duration
}

type sinkConf struct {
	URL     string        `json:"url"`
	Timeout time.Duration `json:"timeout"`
	Retries int           `json:"retries"`
}

func TestRegistry_Create(t *testing.T) {
	reg := NewRegistry[*sink]()
	if err := reg.Register("influx", func(conf map[string]any) (*sink, error) {
		var c sinkConf
		if err := Decode(conf, &c); err != nil {
			return nil, err
		}
		return &sink{URL: c.URL, Timeout: c.Timeout}, nil
	}); err != nil {
		t.Fatalf("register: %v", err)
	}
	inst, err := reg.Create(ModuleConfig{Type: "influx", Conf: map[string]any{"url": "http://influx:8086", "timeout": "5s"}})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if inst.URL != "http://influx:8086" || inst.Timeout != 5*time.Second {
		t.Fatalf("unexpected instance %+v", inst)
	}
}

func TestDecode_WeakTypes(t *testing.T) {
	var c sinkConf
	if err := Decode(map[string]any{"retries": "3"}, &c); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if c.Retries != 3 {
		t.Fatalf("expected 3 got %d", c.Retries)
	}
}

func TestRegistry_Errors(t *testing.T) {
	reg := NewRegistry[int]()
	if err := reg.Register("x", func(map[string]any) (int, error) { return 1, nil }); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := reg.Register("x", func(map[string]any) (int, error) { return 2, nil }); err == nil {
		t.Fatal("expected duplicate error")
	}
	if err := reg.Register("y", nil); err == nil {
		t.Fatal("expected nil factory error")
	}
	if _, err := reg.Create(ModuleConfig{Type: "z"}); !errors.Is(err, ErrUnknownType) {
		t.Fatalf("expected ErrUnknownType, got %v", err)
	}
	failing := errors.New("boom")
	_ = reg.Register("bad", func(map[string]any) (int, error) { return 0, failing })
	if _, err := reg.Create(ModuleConfig{Type: "bad"}); !errors.Is(err, failing) {
		t.Fatalf("expected wrapped factory error, got %v", err)
	}
	if got := reg.Types(); len(got) != 2 || got[0] != "bad" || got[1] != "x" {
		t.Fatalf("unexpected types %v", got)
	}
}
