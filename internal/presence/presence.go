// Package presence trackea qué participantes están "online".
//
// La membresía se refresca con cada fetch/submit del participante; una
// entrada que no se refresca expira sola después de la ventana de
// inactividad. Con ventana <= 0 las entradas no expiran nunca (el
// comportamiento del sistema original).
package presence

import (
	"sort"
	"time"

	"github.com/dropDatabas3/inkboard/internal/metrics"
	gocache "github.com/patrickmn/go-cache"
)

// DefaultWindow is the inactivity window after which a participant stops
// being listed as online.
const DefaultWindow = 5 * time.Minute

// Tracker is the process-wide set of currently-active participant ids.
type Tracker struct {
	c *gocache.Cache
}

// New creates a tracker whose entries expire after the given inactivity
// window. window <= 0 disables expiry.
func New(window time.Duration) *Tracker {
	ttl := window
	if ttl <= 0 {
		ttl = gocache.NoExpiration
	}
	cleanup := window / 2
	if cleanup <= 0 {
		cleanup = time.Minute
	}
	return &Tracker{c: gocache.New(ttl, cleanup)}
}

// MarkPresent adds id to the online set, refreshing its expiry. Idempotent.
func (t *Tracker) MarkPresent(id string) {
	if id == "" {
		return
	}
	t.c.SetDefault(id, time.Now())
	metrics.BoardOnlineUsers.Set(float64(t.c.ItemCount()))
}

// List returns the current members. Order is not part of the contract; the
// ids are sorted only so responses are stable.
func (t *Tracker) List() []string {
	items := t.c.Items()
	out := make([]string, 0, len(items))
	for id := range items {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Remove drops id from the online set.
func (t *Tracker) Remove(id string) {
	t.c.Delete(id)
	metrics.BoardOnlineUsers.Set(float64(t.c.ItemCount()))
}
