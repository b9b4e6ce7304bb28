package ui

import "clock/config"

var noActiveLaneMessages = map[string]string{
	config.LanguageRU: "Модули часов и информации деактивированы, что ещё ты хочешь здесь увидеть?",
	config.LanguageEN: "Clock and info modules are disabled, what else do you want to see here?",
}

// NoActiveLaneError is returned by Run when both the clock and the info panel
// are disabled.
type NoActiveLaneError struct {
	Language string
}

func (e *NoActiveLaneError) Error() string {
	return noActiveLaneMessages[config.VerifyLanguage(e.Language)]
}
