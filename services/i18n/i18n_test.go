package i18n

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCatalogAdd(t *testing.T) {
	nested := map[string]interface{}{
		"nav": map[string]interface{}{
			"home": "Home",
			"settings": map[string]interface{}{
				"title": "Settings",
			},
		},
		"count": 123,
	}

	flat := catalog{}
	flat.add("", nested)

	assert.Equal(t, "Home", flat["nav.home"])
	assert.Equal(t, "Settings", flat["nav.settings.title"])
	assert.Equal(t, "123", flat["count"])
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		args     Args
		expected string
	}{
		{
			name:     "No placeholders",
			text:     "Hello World",
			args:     nil,
			expected: "Hello World",
		},
		{
			name:     "Single placeholder",
			text:     "Hello {name}",
			args:     Args{"name": "Tom"},
			expected: "Hello Tom",
		},
		{
			name:     "Multiple placeholders",
			text:     "{greeting} {name}, you have {count} messages",
			args:     Args{"greeting": "Hi", "name": "Tom", "count": 5},
			expected: "Hi Tom, you have 5 messages",
		},
		{
			name:     "Missing argument",
			text:     "Hello {name}",
			args:     Args{"other": "val"},
			expected: "Hello {name}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var result string
			if tt.args == nil {
				result = format(tt.text)
			} else {
				result = format(tt.text, tt.args)
			}
			assert.Equal(t, tt.expected, result)
		})
	}

	t.Run("Later args win", func(t *testing.T) {
		assert.Equal(t, "Hi Ann", format("Hi {name}", Args{"name": "Tom"}, Args{"name": "Ann"}))
	})

	t.Run("Value containing a placeholder is not expanded", func(t *testing.T) {
		assert.Equal(t, "{b} and x", format("{a} and {b}", Args{"a": "{b}", "b": "x"}))
	})
}

func TestGetLocale(t *testing.T) {
	t.Run("Default locale", func(t *testing.T) {
		ctx := context.Background()
		assert.Equal(t, "en", GetLocale(ctx))
	})

	t.Run("Locale from LocaleContextKey", func(t *testing.T) {
		ctx := context.WithValue(context.Background(), LocaleContextKey, "zh")
		assert.Equal(t, "zh", GetLocale(ctx))
	})

	t.Run("Empty value falls back", func(t *testing.T) {
		ctx := WithLocale(context.Background(), "")
		assert.Equal(t, "en", GetLocale(ctx))
	})
}

func TestMatch(t *testing.T) {
	tests := []struct {
		name     string
		header   string
		expected string
	}{
		{name: "Empty header", header: "", expected: "en"},
		{name: "English", header: "en-GB,en;q=0.9", expected: "en"},
		{name: "Hong Kong Chinese", header: "zh-HK,zh;q=0.9,en;q=0.8", expected: "zh"},
		{name: "Taiwan Chinese", header: "zh-TW", expected: "zh"},
		{name: "Simplified Chinese", header: "zh-CN", expected: "zh"},
		{name: "Preference order", header: "en-US,zh-HK;q=0.5", expected: "en"},
		{name: "Unsupported language", header: "fr-FR", expected: "en"},
		{name: "Malformed header", header: ";;;", expected: "en"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Match(tt.header))
		})
	}
}

func TestSupported(t *testing.T) {
	assert.Equal(t, []string{"en", "zh"}, Supported())
	assert.True(t, IsSupported("zh"))
	assert.False(t, IsSupported("es"))
	assert.Equal(t, "en", Default())

	// Callers get a copy.
	list := Supported()
	list[0] = "xx"
	assert.Equal(t, "en", Supported()[0])
}

func TestTranslateLogic(t *testing.T) {
	swapCatalogs(t, map[string]catalog{
		"en": {"test.hello": "Hello", "test.welcome": "Welcome {name}"},
		"zh": {"test.hello": "你好"},
	})

	t.Run("Direct lookup", func(t *testing.T) {
		assert.Equal(t, "你好", Translate("zh", "test.hello"))
		assert.Equal(t, "Hello", Translate("en", "test.hello"))
	})

	t.Run("Fallback to default", func(t *testing.T) {
		// zh doesn't have test.welcome, should fallback to en
		assert.Equal(t, "Welcome Tom", Translate("zh", "test.welcome", Args{"name": "Tom"}))
	})

	t.Run("Fallback to key", func(t *testing.T) {
		assert.Equal(t, "missing.key", Translate("zh", "missing.key"))
	})
}

func TestT(t *testing.T) {
	swapCatalogs(t, map[string]catalog{"zh": {"greet": "你好 {name}"}})

	ctx := WithLocale(context.Background(), "zh")
	result := T(ctx, "greet", Args{"name": "Tom"})
	assert.Equal(t, "你好 Tom", result)
}

func TestLoadExecution(t *testing.T) {
	err := Load()
	assert.NoError(t, err)

	mutex.RLock()
	defer mutex.RUnlock()
	assert.NotEmpty(t, catalogs["en"])
	assert.NotEmpty(t, catalogs["zh"])
}

func TestLocaleFilesHaveSameKeys(t *testing.T) {
	assert.NoError(t, Load())

	mutex.RLock()
	defer mutex.RUnlock()
	for key := range catalogs["en"] {
		_, ok := catalogs["zh"][key]
		assert.True(t, ok, "zh is missing %s", key)
	}
	for key := range catalogs["zh"] {
		_, ok := catalogs["en"][key]
		assert.True(t, ok, "en is missing %s", key)
	}
}

// swapCatalogs installs cats for the duration of the test.
func swapCatalogs(t *testing.T, cats map[string]catalog) {
	t.Helper()
	mutex.Lock()
	old := catalogs
	catalogs = cats
	mutex.Unlock()

	t.Cleanup(func() {
		mutex.Lock()
		catalogs = old
		mutex.Unlock()
	})
}
