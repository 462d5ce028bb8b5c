package observability

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	p := NoopConversionHooks{}
	p.OnParseStart(ctx, "model.xml")
	p.OnParseComplete(ctx, "model.xml", 1024, time.Second, nil)
	p.OnConvertStart(ctx, "model.xml")
	p.OnConvertComplete(ctx, "model.xml", ConvertStats{Resources: 3}, time.Second, nil)
	p.OnItemDropped(ctx, "unknown-element-type", "id-1")

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "model")
	c.OnCacheMiss(ctx, "model")
	c.OnCacheSet(ctx, "model", 1024)

	s := NoopServerHooks{}
	s.OnRequest(ctx, "POST", "/v1/convert")
	s.OnResponse(ctx, "POST", "/v1/convert", 200, time.Second)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()

	if _, ok := Conversion().(NoopConversionHooks); !ok {
		t.Error("Conversion() should return NoopConversionHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}
	if _, ok := Server().(NoopServerHooks); !ok {
		t.Error("Server() should return NoopServerHooks by default")
	}

	hooks := NewLogHooks(log.New(&bytes.Buffer{}))
	SetConversionHooks(hooks)
	SetCacheHooks(hooks)
	SetServerHooks(hooks)
	if Conversion() != ConversionHooks(hooks) {
		t.Error("SetConversionHooks should set custom hooks")
	}
	if Cache() != CacheHooks(hooks) {
		t.Error("SetCacheHooks should set custom hooks")
	}
	if Server() != ServerHooks(hooks) {
		t.Error("SetServerHooks should set custom hooks")
	}

	// nil keeps the current hooks
	SetConversionHooks(nil)
	if Conversion() != ConversionHooks(hooks) {
		t.Error("SetConversionHooks(nil) should not change hooks")
	}

	Reset()
	if _, ok := Conversion().(NoopConversionHooks); !ok {
		t.Error("Reset() should restore NoopConversionHooks")
	}
}

func TestLogHooks(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf)
	logger.SetLevel(log.DebugLevel)
	h := NewLogHooks(logger)
	ctx := context.Background()

	h.OnConvertComplete(ctx, "a.xml", ConvertStats{Resources: 7}, time.Millisecond, nil)
	h.OnConvertComplete(ctx, "b.xml", ConvertStats{}, 0, errors.New("boom"))
	h.OnItemDropped(ctx, "dangling-statement", "r4")
	h.OnResponse(ctx, "GET", "/healthz", 200, time.Millisecond)

	out := buf.String()
	for _, want := range []string{"conversion finished", "resources=7", "conversion failed", "boom", "item dropped", "r4", "status=200"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}
