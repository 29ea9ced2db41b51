package i18n

var messages = map[string]map[string]string{
	"en": {
		ErrKeyInvalidRequest:     "Invalid request",
		ErrKeyInvalidRequestBody: "Invalid request body",
		ErrKeyInternalError:      "An unexpected error occurred",
		ErrKeyUnauthorized:       "Unauthorized",
		ErrKeyInvalidCredentials: "Invalid email or password",
		ErrKeyAPIKeyRequired:     "API key is required",
		ErrKeyInvalidAPIKey:      "Invalid API key",
		ErrKeyForbidden:          "Forbidden",
		ErrKeyNotFound:           "Not found",
		ErrKeyRateLimitExceeded:  "Too many requests, please try again later",
		ErrKeyConflict:           "Conflict",
		ErrKeyInvalidToken:       "Invalid or expired token",
		ErrKeyTokenRequired:      "Authentication token is required",
		ErrKeyTimeout:            "The request took too long",
		ErrKeyUnavailable:        "Storage is temporarily unavailable, please try again shortly",

		ErrKeyIncompleteInput: "Some required inputs are missing",
		ErrKeyInvalidValue:    "Some inputs have invalid values",
		ErrKeyModeConflict:    "Components mix density and displacement factor values",

		ErrKeySessionNotFound:      "Chat session not found or expired",
		ErrKeyMessageEmpty:         "Message is empty",
		ErrKeyMessageTooLong:       "Message is too long",
		ErrKeyCalculationNotFound:  "Calculation not found",
		ErrKeyInvalidCalculationID: "Invalid calculation id",
		ErrKeyHistoryDisabled:      "Calculation history is not enabled",

		SuccessKeyCalculationCompleted: "Calculation completed",
		SuccessKeySessionStarted:       "Chat session started",
		SuccessKeyLoggedIn:             "Signed in",
	},
	"pt": {
		ErrKeyInvalidRequest:     "Requisição inválida",
		ErrKeyInvalidRequestBody: "Corpo da requisição inválido",
		ErrKeyInternalError:      "Ocorreu um erro inesperado",
		ErrKeyUnauthorized:       "Não autorizado",
		ErrKeyInvalidCredentials: "E-mail ou senha inválidos",
		ErrKeyAPIKeyRequired:     "Chave de API é obrigatória",
		ErrKeyInvalidAPIKey:      "Chave de API inválida",
		ErrKeyForbidden:          "Proibido",
		ErrKeyNotFound:           "Não encontrado",
		ErrKeyRateLimitExceeded:  "Muitas requisições, tente novamente mais tarde",
		ErrKeyConflict:           "Conflito",
		ErrKeyInvalidToken:       "Token inválido ou expirado",
		ErrKeyTokenRequired:      "Token de autenticação é obrigatório",
		ErrKeyTimeout:            "A requisição demorou demais",
		ErrKeyUnavailable:        "Armazenamento temporariamente indisponível, tente novamente em instantes",

		ErrKeyIncompleteInput: "Faltam dados obrigatórios",
		ErrKeyInvalidValue:    "Alguns dados têm valores inválidos",
		ErrKeyModeConflict:    "Os componentes misturam densidade e fator de deslocamento",

		ErrKeySessionNotFound:      "Sessão de chat não encontrada ou expirada",
		ErrKeyMessageEmpty:         "A mensagem está vazia",
		ErrKeyMessageTooLong:       "A mensagem é longa demais",
		ErrKeyCalculationNotFound:  "Cálculo não encontrado",
		ErrKeyInvalidCalculationID: "Id de cálculo inválido",
		ErrKeyHistoryDisabled:      "O histórico de cálculos não está habilitado",

		SuccessKeyCalculationCompleted: "Cálculo concluído",
		SuccessKeySessionStarted:       "Sessão de chat iniciada",
		SuccessKeyLoggedIn:             "Sessão iniciada",
	},
	"nl": {
		ErrKeyInvalidRequest:     "Ongeldig verzoek",
		ErrKeyInvalidRequestBody: "Ongeldige aanvraag body",
		ErrKeyInternalError:      "Er is een onverwachte fout opgetreden",
		ErrKeyUnauthorized:       "Niet geautoriseerd",
		ErrKeyInvalidCredentials: "Ongeldig e-mailadres of wachtwoord",
		ErrKeyAPIKeyRequired:     "API-sleutel is vereist",
		ErrKeyInvalidAPIKey:      "Ongeldige API-sleutel",
		ErrKeyForbidden:          "Verboden",
		ErrKeyNotFound:           "Niet gevonden",
		ErrKeyRateLimitExceeded:  "Te veel verzoeken, probeer het later opnieuw",
		ErrKeyConflict:           "Conflict",
		ErrKeyInvalidToken:       "Ongeldig of verlopen token",
		ErrKeyTokenRequired:      "Authenticatietoken is vereist",
		ErrKeyTimeout:            "Het verzoek duurde te lang",
		ErrKeyUnavailable:        "Opslag is tijdelijk niet beschikbaar, probeer het zo opnieuw",

		ErrKeyIncompleteInput: "Er ontbreken verplichte gegevens",
		ErrKeyInvalidValue:    "Sommige gegevens hebben ongeldige waarden",
		ErrKeyModeConflict:    "Componenten mengen dichtheid en verdringingsfactor",

		ErrKeySessionNotFound:      "Chatsessie niet gevonden of verlopen",
		ErrKeyMessageEmpty:         "Bericht is leeg",
		ErrKeyMessageTooLong:       "Bericht is te lang",
		ErrKeyCalculationNotFound:  "Berekening niet gevonden",
		ErrKeyInvalidCalculationID: "Ongeldig berekening-id",
		ErrKeyHistoryDisabled:      "Berekeningsgeschiedenis is niet ingeschakeld",

		SuccessKeyCalculationCompleted: "Berekening voltooid",
		SuccessKeySessionStarted:       "Chatsessie gestart",
		SuccessKeyLoggedIn:             "Aangemeld",
	},
}
