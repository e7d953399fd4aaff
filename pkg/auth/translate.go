package auth

import (
	"fmt"
	"strings"
)

// translation maps known backend error substrings to user-facing copy.
// First match wins, so more specific phrases come first.
type translation struct {
	contains []string
	message  string
}

var translations = []translation{
	// Account / credentials
	{[]string{"invalid identifier", "invalid password"}, "Email o password non corretti."},
	{[]string{"email is already taken", "email already exists"}, "Questa email è già registrata. Prova ad accedere."},
	{[]string{"username is already taken"}, "Questo nome utente è già in uso."},
	{[]string{"confirmed"}, "Il tuo account non è ancora confermato. Controlla la tua email."},
	{[]string{"blocked"}, "Questo account è stato bloccato."},

	// Validation
	{[]string{"password must be at least"}, "La password deve avere almeno 6 caratteri."},
	{[]string{"must be a valid email", "email format"}, "Inserisci un indirizzo email valido."},
	{[]string{"is required", "must be defined"}, "Tutti i campi sono obbligatori."},

	// Security / throttling
	{[]string{"too many attempts", "rate limit"}, "Troppi tentativi. Riprova tra 5 minuti."},
	{[]string{"forbidden"}, "Accesso negato."},
}

// translateError converts a backend error message into user-facing copy by
// substring matching; unknown messages fall back to a generic wrapper.
func translateError(msg string) string {
	if msg == "" {
		return "Si è verificato un errore sconosciuto."
	}

	lower := strings.ToLower(msg)
	for _, tr := range translations {
		for _, needle := range tr.contains {
			if strings.Contains(lower, needle) {
				return tr.message
			}
		}
	}
	return fmt.Sprintf("Errore: %s", msg)
}
