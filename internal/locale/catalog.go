package locale

// catalog holds all message templates per language. Keys missing from a
// language fall back per the chain in lookup.
var catalog = map[Code]map[string]string{
	English: {
		KeyGreeting:       "Welcome to Ultraxas Music Bot! Send a song or artist name to begin.",
		KeyPick:           "Select a result to download:",
		KeyCancel:         "Search cancelled.",
		KeyDownloading:    "Downloading {title}...",
		KeySent:           "Here you go: {title}",
		KeyNoResults:      "No results found.",
		KeySetLang:        "Choose your language:",
		KeyLangSet:        "Language set to: {lang}",
		KeyInvalidSession: "Invalid session.",
		KeySessionExpired: "Session expired. Please search again.",
		KeySearchError:    "Search error: {error}",
		KeyDownloadError:  "Download failed.\n\nError: {error}",
		KeyHelp: "How to use Ultraxas Music Bot:\n\n" +
			"1. Type the name of any song or artist.\n" +
			"2. Select from up to 100 results.\n" +
			"3. Tap to instantly download MP3.\n\n" +
			"Use /language to change the response language.\n" +
			"Use /stop to clear your current search session.",
		KeyLegal: "Legal Notice\n\n" +
			"Ultraxas Music Bot is for personal and educational use only.\n" +
			"It does not host or store copyrighted content.\n" +
			"All audio is sourced via public search APIs.\n\n" +
			"By using this bot, you agree to respect music ownership rights.",
	},
	French: {
		KeyGreeting:       "Bienvenue sur Ultraxas Music Bot ! Envoyez une chanson ou un artiste pour commencer.",
		KeyPick:           "Sélectionnez un résultat à télécharger :",
		KeyCancel:         "Recherche annulée.",
		KeyDownloading:    "Téléchargement de {title}...",
		KeySent:           "Voici : {title}",
		KeyNoResults:      "Aucun résultat trouvé.",
		KeySetLang:        "Choisissez votre langue :",
		KeyLangSet:        "Langue définie sur : {lang}",
		KeyInvalidSession: "Session invalide.",
		KeySessionExpired: "Session expirée. Veuillez relancer la recherche.",
		KeySearchError:    "Erreur de recherche : {error}",
		KeyDownloadError:  "Échec du téléchargement.\n\nErreur : {error}",
	},
	Spanish: {
		KeyGreeting:       "¡Bienvenido al bot de música Ultraxas! Escribe el nombre de una canción o artista.",
		KeyPick:           "Selecciona un resultado para descargar:",
		KeyCancel:         "Búsqueda cancelada.",
		KeyDownloading:    "Descargando {title}...",
		KeySent:           "Aquí tienes: {title}",
		KeyNoResults:      "No se encontraron resultados.",
		KeySetLang:        "Elige tu idioma:",
		KeyLangSet:        "Idioma cambiado a: {lang}",
		KeyInvalidSession: "Sesión inválida.",
		KeySessionExpired: "La sesión expiró. Vuelve a buscar.",
		KeySearchError:    "Error de búsqueda: {error}",
		KeyDownloadError:  "La descarga falló.\n\nError: {error}",
	},
	Twi: {
		KeyGreeting:    "Akwaaba! Fa dwom din anaa ɔdeɛ na yɛmfa nsi dwumadie no ase.",
		KeyPick:        "Paw dwom a wopɛ sɛ wodownloadi:",
		KeyCancel:      "Ahwehwɛ no atwa mu.",
		KeyDownloading: "Redownloadi {title}...",
		KeyNoResults:   "Yɛannhu biribiara.",
		KeySetLang:     "Paw kasa a wopɛ:",
		KeyLangSet:     "Wopaw kasa: {lang}",
	},
}
