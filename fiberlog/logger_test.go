package fiberlog

import (
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	logrustest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
)

func TestLatencyIsPerRequest(t *testing.T) {
	logger, hook := logrustest.NewNullLogger()
	app := fiber.New()
	app.Use(New(Config{
		Logger: logger,
		Tags:   []string{TagLatency, TagPath},
	}))
	app.Get("/slow", func(c *fiber.Ctx) error {
		time.Sleep(80 * time.Millisecond)
		return c.SendString("ok")
	})
	app.Get("/fast", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	// the fast request starts and finishes while the slow one is in
	// flight, so shared timing state would corrupt the slow latency
	errs := make(chan error, 2)
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, err := app.Test(httptest.NewRequest("GET", "/slow", nil), 2000)
		errs <- err
	}()
	go func() {
		defer wg.Done()
		time.Sleep(20 * time.Millisecond)
		_, err := app.Test(httptest.NewRequest("GET", "/fast", nil), 2000)
		errs <- err
	}()
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	latencies := map[string]time.Duration{}
	for _, entry := range hook.AllEntries() {
		path, ok := entry.Data[TagPath].(string)
		require.True(t, ok)
		raw, ok := entry.Data[TagLatency].(string)
		require.True(t, ok)
		dur, err := time.ParseDuration(raw)
		require.NoError(t, err)
		latencies[path] = dur
	}
	require.GreaterOrEqual(t, latencies["/slow"], 80*time.Millisecond)
	require.Less(t, latencies["/fast"], 60*time.Millisecond)
}
