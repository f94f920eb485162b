package ui

import (
	"github.com/billshinji/Vsix-Downloader/internal/model"
)

// Localization manages UI text translations
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
}

// Text keys for localization
const (
	KeyAppTitle           = "app_title"
	KeyDownload           = "download"
	KeyCancel             = "cancel"
	KeyRemove             = "remove"
	KeyReveal             = "reveal"
	KeyCopyPath           = "copy_path"
	KeySettings           = "settings"
	KeyFile               = "file"
	KeyLanguage           = "language"
	KeyDownloadDirectory  = "download_directory"
	KeyAutoReveal         = "auto_reveal"
	KeySave               = "save"
	KeyBrowse             = "browse"
	KeyPublisher          = "publisher"
	KeyExtension          = "extension"
	KeyVersion            = "version"
	KeyTargetPlatform     = "target_platform"
	KeyFillAllFields      = "fill_all_fields"
	KeyDownloadStarted    = "download_started"
	KeyDownloadCompleted  = "download_completed"
	KeyDownloadCancelled  = "download_cancelled"
	KeyAlreadyInQueue     = "already_in_queue"
	KeySettingsSaved      = "settings_saved"
	KeySavedTo            = "saved_to"
	KeyPathCopied         = "path_copied"
	KeyErrorRevealingFile = "error_revealing_file"

	KeyFailInvalidURL      = "fail_invalid_url"
	KeyFailNetwork         = "fail_network"
	KeyFailInvalidResponse = "fail_invalid_response"
	KeyFailDestination     = "fail_destination"
	KeyFailWrite           = "fail_write"
)

// NewLocalization creates a new localization manager
func NewLocalization() *Localization {
	l := &Localization{
		currentLanguage: "en",
		texts:           make(map[string]map[string]string),
	}

	l.initializeTexts()
	return l
}

// SetLanguage sets the current language
func (l *Localization) SetLanguage(lang string) {
	if lang == "system" {
		// Use system locale - simplified to English for now
		lang = "en"
	}

	if _, exists := l.texts[lang]; exists {
		l.currentLanguage = lang
	}
}

// GetText returns localized text for the given key
func (l *Localization) GetText(key string) string {
	if texts, exists := l.texts[l.currentLanguage]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Fallback to English
	if texts, exists := l.texts["en"]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Final fallback - return key itself
	return key
}

// FailureText returns the localized description for a failure kind
func (l *Localization) FailureText(kind model.ErrorKind) string {
	switch kind {
	case model.ErrInvalidURL:
		return l.GetText(KeyFailInvalidURL)
	case model.ErrNetwork:
		return l.GetText(KeyFailNetwork)
	case model.ErrInvalidResponse:
		return l.GetText(KeyFailInvalidResponse)
	case model.ErrDestinationUnavailable:
		return l.GetText(KeyFailDestination)
	case model.ErrFileWriteFailed:
		return l.GetText(KeyFailWrite)
	default:
		return kind.String()
	}
}

// GetCurrentLanguage returns the current language code
func (l *Localization) GetCurrentLanguage() string {
	return l.currentLanguage
}

// GetAvailableLanguages returns map of available languages with their display names
func (l *Localization) GetAvailableLanguages() map[string]string {
	return map[string]string{
		"en": "English",
		"ru": "Русский",
		"pt": "Português",
	}
}

// initializeTexts initializes all text translations
func (l *Localization) initializeTexts() {
	// English texts
	l.texts["en"] = map[string]string{
		KeyAppTitle:           "VSIX Downloader",
		KeyDownload:           "Download",
		KeyCancel:             "Cancel",
		KeyRemove:             "Remove",
		KeyReveal:             "Show",
		KeyCopyPath:           "Path",
		KeySettings:           "Settings",
		KeyFile:               "File",
		KeyLanguage:           "Language",
		KeyDownloadDirectory:  "Download Directory",
		KeyAutoReveal:         "Reveal file when download completes",
		KeySave:               "Save",
		KeyBrowse:             "Browse",
		KeyPublisher:          "Publisher (e.g. ms-vscode)",
		KeyExtension:          "Extension (e.g. cpptools)",
		KeyVersion:            "Version (e.g. 1.20.5)",
		KeyTargetPlatform:     "Target platform (optional)",
		KeyFillAllFields:      "Publisher, extension and version are required",
		KeyDownloadStarted:    "Download started",
		KeyDownloadCompleted:  "Download completed",
		KeyDownloadCancelled:  "Download cancelled",
		KeyAlreadyInQueue:     "Already downloading",
		KeySettingsSaved:      "Settings saved successfully!",
		KeySavedTo:            "Saved to",
		KeyPathCopied:         "Path copied to clipboard",
		KeyErrorRevealingFile: "Cannot show file",

		KeyFailInvalidURL:      "The package coordinates do not form a valid URL",
		KeyFailNetwork:         "Download failed",
		KeyFailInvalidResponse: "The marketplace returned an unreadable response",
		KeyFailDestination:     "The download directory is unavailable",
		KeyFailWrite:           "The package file could not be saved",
	}

	// Russian texts
	l.texts["ru"] = map[string]string{
		KeyAppTitle:           "VSIX Загрузчик",
		KeyDownload:           "Скачать",
		KeyCancel:             "Отмена",
		KeyRemove:             "Удалить",
		KeyReveal:             "Показать",
		KeyCopyPath:           "Путь",
		KeySettings:           "Настройки",
		KeyFile:               "Файл",
		KeyLanguage:           "Язык",
		KeyDownloadDirectory:  "Папка загрузки",
		KeyAutoReveal:         "Показывать файл после загрузки",
		KeySave:               "Сохранить",
		KeyBrowse:             "Обзор",
		KeyPublisher:          "Издатель (например, ms-vscode)",
		KeyExtension:          "Расширение (например, cpptools)",
		KeyVersion:            "Версия (например, 1.20.5)",
		KeyTargetPlatform:     "Целевая платформа (необязательно)",
		KeyFillAllFields:      "Нужно заполнить издателя, расширение и версию",
		KeyDownloadStarted:    "Загрузка начата",
		KeyDownloadCompleted:  "Загрузка завершена",
		KeyDownloadCancelled:  "Загрузка отменена",
		KeyAlreadyInQueue:     "Уже загружается",
		KeySettingsSaved:      "Настройки успешно сохранены!",
		KeySavedTo:            "Сохранено в",
		KeyPathCopied:         "Путь скопирован в буфер обмена",
		KeyErrorRevealingFile: "Не удалось показать файл",

		KeyFailInvalidURL:      "Из указанных данных не получается корректный URL",
		KeyFailNetwork:         "Загрузка не удалась",
		KeyFailInvalidResponse: "Маркетплейс вернул нечитаемый ответ",
		KeyFailDestination:     "Папка загрузки недоступна",
		KeyFailWrite:           "Не удалось сохранить файл пакета",
	}

	// Portuguese texts
	l.texts["pt"] = map[string]string{
		KeyAppTitle:           "VSIX Downloader",
		KeyDownload:           "Baixar",
		KeyCancel:             "Cancelar",
		KeyRemove:             "Remover",
		KeyReveal:             "Mostrar",
		KeyCopyPath:           "Caminho",
		KeySettings:           "Configurações",
		KeyFile:               "Arquivo",
		KeyLanguage:           "Idioma",
		KeyDownloadDirectory:  "Diretório de Download",
		KeyAutoReveal:         "Mostrar arquivo ao concluir o download",
		KeySave:               "Salvar",
		KeyBrowse:             "Navegar",
		KeyPublisher:          "Editor (ex.: ms-vscode)",
		KeyExtension:          "Extensão (ex.: cpptools)",
		KeyVersion:            "Versão (ex.: 1.20.5)",
		KeyTargetPlatform:     "Plataforma alvo (opcional)",
		KeyFillAllFields:      "Editor, extensão e versão são obrigatórios",
		KeyDownloadStarted:    "Download iniciado",
		KeyDownloadCompleted:  "Download concluído",
		KeyDownloadCancelled:  "Download cancelado",
		KeyAlreadyInQueue:     "Já está baixando",
		KeySettingsSaved:      "Configurações salvas com sucesso!",
		KeySavedTo:            "Salvo em",
		KeyPathCopied:         "Caminho copiado",
		KeyErrorRevealingFile: "Não foi possível mostrar o arquivo",

		KeyFailInvalidURL:      "Os dados do pacote não formam uma URL válida",
		KeyFailNetwork:         "Falha no download",
		KeyFailInvalidResponse: "O marketplace retornou uma resposta ilegível",
		KeyFailDestination:     "O diretório de download está indisponível",
		KeyFailWrite:           "Não foi possível salvar o arquivo do pacote",
	}
}
