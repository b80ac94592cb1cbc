package goquery_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/fwojciec/lazyframe"
	"github.com/fwojciec/lazyframe/goquery"
	"github.com/fwojciec/lazyframe/loader"
	"github.com/fwojciec/lazyframe/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const page = `<!DOCTYPE html>
<html>
<head><title>Videos</title></head>
<body>
<div class="lazyframe" data-vendor="youtube" data-src="https://www.youtube.com/watch?v=dQw4w9WgXcQ" data-title=""></div>
<p>between</p>
<div class="lazyframe" data-src="https://example.com/player" style="height: 200px"><img src="poster.jpg"></div>
</body>
</html>`

func TestDocument_QuerySelectorAll(t *testing.T) {
	t.Parallel()

	t.Run("returns matching elements in document order", func(t *testing.T) {
		t.Parallel()

		doc, err := goquery.NewDocumentFromHTML(page)
		require.NoError(t, err)

		elements, err := doc.QuerySelectorAll(".lazyframe")

		require.NoError(t, err)
		require.Len(t, elements, 2)
		assert.Equal(t, []lazyframe.Attribute{
			{Name: "class", Value: "lazyframe"},
			{Name: "data-vendor", Value: "youtube"},
			{Name: "data-src", Value: "https://www.youtube.com/watch?v=dQw4w9WgXcQ"},
			{Name: "data-title", Value: ""},
		}, elements[0].Attributes())
		assert.False(t, elements[0].HasChildren())
		assert.True(t, elements[1].HasChildren())
	})

	t.Run("returns the same element for the same node", func(t *testing.T) {
		t.Parallel()

		doc, err := goquery.NewDocumentFromHTML(page)
		require.NoError(t, err)

		first, err := doc.QuerySelectorAll(".lazyframe")
		require.NoError(t, err)
		second, err := doc.QuerySelectorAll("div[data-vendor]")
		require.NoError(t, err)

		require.Len(t, second, 1)
		assert.True(t, first[0] == second[0])
	})

	t.Run("returns invalid error for bad selector", func(t *testing.T) {
		t.Parallel()

		doc, err := goquery.NewDocumentFromHTML(page)
		require.NoError(t, err)

		_, err = doc.QuerySelectorAll("div[")

		require.Error(t, err)
		assert.Equal(t, lazyframe.EINVALID, lazyframe.ErrorCode(err))
	})
}

func TestElement_Mutations(t *testing.T) {
	t.Parallel()

	t.Run("writes classes, style, title and play button", func(t *testing.T) {
		t.Parallel()

		doc, err := goquery.NewDocumentFromHTML(`<html><body><div id="v" style="height: 200px; background-image: none"></div></body></html>`)
		require.NoError(t, err)
		el := doc.Element("#v")
		require.NotNil(t, el)

		el.AddClass(lazyframe.ClassLoaded)
		el.SetBackgroundImage(lazyframe.ImageSet("https://img/a.jpg"))
		el.AppendTitle("Tom & Jerry <live>")
		el.AppendPlayButton("Play")

		out, err := doc.HTML()
		require.NoError(t, err)
		assert.True(t, el.HasClass(lazyframe.ClassLoaded))
		assert.Contains(t, out, `style="height: 200px; background-image: -webkit-image-set(url(https://img/a.jpg) 1x);"`)
		assert.Contains(t, out, `<span class="lazyframe__title">Tom &amp; Jerry &lt;live&gt;</span>`)
		assert.Contains(t, out, `<button type="button" class="lf-play-btn"><span class="visually-hidden">Play</span></button>`)
		assert.True(t, el.HasChildren())
	})

	t.Run("attaches iframe with attributes", func(t *testing.T) {
		t.Parallel()

		doc, err := goquery.NewDocumentFromHTML(`<html><body><div id="v"></div></body></html>`)
		require.NoError(t, err)
		el := doc.Element("#v")

		el.AppendFrame(&lazyframe.Frame{
			ID:              "lazyframe-abc",
			Src:             "https://player.vimeo.com/video/76979871/?autoplay=1",
			FrameBorder:     "0",
			AllowFullscreen: true,
			Allow:           lazyframe.AutoplayPermissions,
		})

		var buf bytes.Buffer
		require.NoError(t, doc.Render(&buf))
		assert.Contains(t, buf.String(), `<iframe id="lazyframe-abc" src="https://player.vimeo.com/video/76979871/?autoplay=1" frameborder="0" allowfullscreen="" allow="accelerometer; autoplay; encrypted-media; gyroscope; picture-in-picture"></iframe>`)
	})

	t.Run("omits src when frame has none", func(t *testing.T) {
		t.Parallel()

		node := goquery.FrameNode(&lazyframe.Frame{ID: "lazyframe-1", FrameBorder: "0"})

		for _, a := range node.Attr {
			assert.NotEqual(t, "src", a.Key)
		}
	})

	t.Run("runs click handlers in order", func(t *testing.T) {
		t.Parallel()

		doc, err := goquery.NewDocumentFromHTML(`<html><body><div id="v"></div></body></html>`)
		require.NoError(t, err)
		el := doc.Element("#v")

		var calls []int
		el.OnClick(func() { calls = append(calls, 1) })
		el.OnClick(func() { calls = append(calls, 2) })
		el.Click()

		assert.Equal(t, []int{1, 2}, calls)
	})
}

func TestElement_Path(t *testing.T) {
	t.Parallel()

	doc, err := goquery.NewDocumentFromHTML(page)
	require.NoError(t, err)
	elements, err := doc.QuerySelectorAll(".lazyframe")
	require.NoError(t, err)

	second := elements[1].(*goquery.Element)
	path := second.Path()

	assert.Equal(t, "html > body:nth-child(2) > div:nth-child(3)", path)
	found, err := doc.QuerySelectorAll(path)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.True(t, found[0] == elements[1])
}

func TestDocument_Loader(t *testing.T) {
	t.Parallel()

	t.Run("renders placeholders and attaches frame on click", func(t *testing.T) {
		t.Parallel()

		doc, err := goquery.NewDocumentFromHTML(page)
		require.NoError(t, err)

		l := &loader.Loader{Metadata: &mock.MetadataFetcher{
			FetchMetadataFn: func(context.Context, string) (*lazyframe.Metadata, error) {
				return &lazyframe.Metadata{Title: "Never Gonna", Thumbnail: "https://img/t.jpg"}, nil
			},
		}}
		records, err := l.InitSelector(context.Background(), doc, ".lazyframe", lazyframe.Config{})
		require.NoError(t, err)
		require.Len(t, records, 2)

		records[0].Target.Click()

		out, err := doc.HTML()
		require.NoError(t, err)
		assert.Contains(t, out, `lazyframe lazyframe--loaded lazyframe--activated`)
		assert.Contains(t, out, `<span class="lazyframe__title">Never Gonna</span>`)
		assert.Contains(t, out, `background-image: -webkit-image-set(url(https://img/t.jpg) 1x);`)
		assert.Contains(t, out, `<iframe id="lazyframe-dQw4w9WgXcQ" src="https://www.youtube.com/embed/dQw4w9WgXcQ/?autoplay=1&amp;v=dQw4w9WgXcQ"`)
		assert.Equal(t, 1, countIframes(t, doc))

		// Registering again leaves the document untouched.
		again, err := l.InitSelector(context.Background(), doc, ".lazyframe", lazyframe.Config{})
		require.NoError(t, err)
		assert.Empty(t, again)

		records[0].Target.Click()
		assert.Equal(t, 1, countIframes(t, doc))
	})
}

func TestDocument_Element(t *testing.T) {
	t.Parallel()

	t.Run("returns invalid element when nothing matches", func(t *testing.T) {
		t.Parallel()

		doc, err := goquery.NewDocumentFromHTML(page)
		require.NoError(t, err)

		assert.False(t, doc.Element(".does-not-exist").Valid())
		assert.True(t, doc.Element(".lazyframe").Valid())
	})

	t.Run("loader skips unmatched element and registers the rest", func(t *testing.T) {
		t.Parallel()

		doc, err := goquery.NewDocumentFromHTML(page)
		require.NoError(t, err)
		l := &loader.Loader{}

		var records []*lazyframe.Record
		assert.NotPanics(t, func() {
			records = l.Init(context.Background(), lazyframe.Config{},
				doc.Element(".does-not-exist"),
				doc.Element("div[data-vendor]"),
			)
		})

		require.Len(t, records, 1)
		assert.True(t, records[0].Target.HasClass(lazyframe.ClassLoaded))
		assert.Equal(t, 1, l.Registry().Len())
	})
}

func countIframes(t *testing.T, doc *goquery.Document) int {
	t.Helper()
	elements, err := doc.QuerySelectorAll("iframe")
	require.NoError(t, err)
	return len(elements)
}
