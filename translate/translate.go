// Package translate renders user-facing messages through a locale-aware
// printer.
package translate

import (
	"log"
	"sync"

	"github.com/jeandeaual/go-locale"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	printerLock sync.RWMutex
	printer     *message.Printer
)

func init() {
	locales, err := locale.GetLocales()
	if err != nil {
		log.Printf("scmips: locale: %v", err)
	}

	if len(locales) == 0 {
		locales = []string{"en-US"}
	}

	printer = message.NewPrinter(message.MatchLanguage(locales...))
}

// SetLanguage replaces the system locale with an explicit BCP 47 tag.
func SetLanguage(tag string) (err error) {
	lang, err := language.Parse(tag)
	if err != nil {
		return
	}

	printerLock.Lock()
	defer printerLock.Unlock()
	printer = message.NewPrinter(lang)

	return
}

// From an en-US Sprintf() format, translate to string.
func From(key message.Reference, args ...any) string {
	printerLock.RLock()
	defer printerLock.RUnlock()
	return printer.Sprintf(key, args...)
}
