package loader_test

import (
	"testing"

	"github.com/fwojciec/lazyframe"
	"github.com/fwojciec/lazyframe/loader"
	"github.com/fwojciec/lazyframe/mock"
	"github.com/stretchr/testify/assert"
)

func TestRegistry(t *testing.T) {
	t.Parallel()

	t.Run("keeps records in insertion order", func(t *testing.T) {
		t.Parallel()

		r := loader.NewRegistry()
		a := &lazyframe.Record{Target: mock.NewElement()}
		b := &lazyframe.Record{Target: mock.NewElement()}

		assert.True(t, r.Add(a))
		assert.True(t, r.Add(b))

		assert.Equal(t, []*lazyframe.Record{a, b}, r.Records())
		assert.Equal(t, 2, r.Len())
	})

	t.Run("rejects a second record for the same target", func(t *testing.T) {
		t.Parallel()

		r := loader.NewRegistry()
		el := mock.NewElement()

		assert.True(t, r.Add(&lazyframe.Record{Target: el}))
		assert.False(t, r.Add(&lazyframe.Record{Target: el}))
		assert.Equal(t, 1, r.Len())
	})

	t.Run("finds records by target identity", func(t *testing.T) {
		t.Parallel()

		r := loader.NewRegistry()
		el := mock.NewElement("data-src", "x")
		rec := &lazyframe.Record{Target: el}
		r.Add(rec)

		assert.Same(t, rec, r.Find(el))
		assert.Nil(t, r.Find(mock.NewElement("data-src", "x")))
	})
}
