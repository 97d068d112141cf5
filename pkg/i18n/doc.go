// Package i18n translates storefront messages.
//
// Translations are loaded once through a TranslationAdapter, usually an
// FSAdapter over embedded YAML or JSON files whose top-level keys are
// language codes:
//
//	en:
//	  MY_ACCOUNT: "My account"
//	  reviews:
//	    count: "%{count} reviews"
//
// Middleware negotiates the request language with golang.org/x/text/language
// and stores it in the context, where Translator.Tc picks it up:
//
//	tr, err := i18n.NewTranslator(ctx, i18n.NewFSAdapter(locales, "locales"))
//	r.Use(i18n.Middleware(tr))
//	msg := tr.Tc(ctx, "reviews.count", "count", "3")
package i18n
