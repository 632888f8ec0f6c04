package ui

import (
	"os"
	"strings"
)

// Localization manages UI text translations
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
}

// LanguageSystem selects the language from the process locale
const LanguageSystem = "system"

// fallbackLanguage is used for missing keys and unknown locales
const fallbackLanguage = "en"

// Text keys for localization
const (
	KeyAppTitle          = "app_title"
	KeyURLPlaceholder    = "url_placeholder"
	KeyFetch             = "fetch"
	KeyFetching          = "fetching"
	KeyFetchingInfo      = "fetching_info"
	KeyVideoInfo         = "video_info"
	KeyFormat            = "format"
	KeySelectFormat      = "select_format"
	KeySaveTo            = "save_to"
	KeyChangeDestination = "change_destination"
	KeyChooseDestination = "choose_destination"
	KeyProgress          = "progress"
	KeyDownload          = "download"
	KeyCancel            = "cancel"
	KeyOpenFolder        = "open_folder"
	KeySettings          = "settings"
	KeyFile              = "file"
	KeyLanguage          = "language"
	KeyDownloadDirectory = "download_directory"
	KeyAutoReveal        = "auto_reveal"
	KeySave              = "save"
	KeyBrowse            = "browse"
	KeySettingsSaved     = "settings_saved"
	KeyPleaseEnterURL    = "please_enter_url"
	KeyErrorOccurred     = "error_occurred"
	KeyNoFormats         = "no_formats"
	KeyPreparing         = "preparing"
	KeyCalculating       = "calculating"
	KeyDownloadingBytes  = "downloading_bytes"
	KeyCancelling        = "cancelling"
	KeyDownloadCompleted = "download_completed"
	KeyDownloadCancelled = "download_cancelled"
	KeyDownloadFailed    = "download_failed"
	KeyAlreadyRunning    = "already_running"
	KeyErrorOpeningFile  = "error_opening_file"
	KeyNoAudio           = "no_audio"
	KeyNone              = "none"
	KeyNoTitle           = "no_title"
	KeyNoChannel         = "no_channel"

	KeyInfoTitle       = "info_title"
	KeyInfoChannel     = "info_channel"
	KeyInfoUploaded    = "info_uploaded"
	KeyInfoDuration    = "info_duration"
	KeyInfoViews       = "info_views"
	KeyInfoLikes       = "info_likes"
	KeyInfoComments    = "info_comments"
	KeyInfoCategories  = "info_categories"
	KeyInfoTags        = "info_tags"
	KeyInfoDescription = "info_description"
)

// NewLocalization creates a new localization manager
func NewLocalization() *Localization {
	l := &Localization{
		currentLanguage: fallbackLanguage,
		texts:           make(map[string]map[string]string),
	}

	l.initializeTexts()
	return l
}

// SetLanguage sets the current language. Unknown codes are ignored.
func (l *Localization) SetLanguage(lang string) {
	if lang == LanguageSystem {
		lang = systemLanguage()
	}

	if _, exists := l.texts[lang]; exists {
		l.currentLanguage = lang
	}
}

// systemLanguage extracts the language part of LC_ALL / LANG (ko_KR.UTF-8 -> ko)
func systemLanguage() string {
	for _, key := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		value := os.Getenv(key)
		if value == "" || value == "C" || value == "POSIX" {
			continue
		}
		if idx := strings.IndexAny(value, "_.-@"); idx > 0 {
			value = value[:idx]
		}
		return strings.ToLower(value)
	}
	return fallbackLanguage
}

// GetText returns localized text for the given key
func (l *Localization) GetText(key string) string {
	if texts, exists := l.texts[l.currentLanguage]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Fallback to English
	if texts, exists := l.texts[fallbackLanguage]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	return key
}

// GetCurrentLanguage returns the current language code
func (l *Localization) GetCurrentLanguage() string {
	return l.currentLanguage
}

// GetAvailableLanguages returns map of available languages with their display names
func (l *Localization) GetAvailableLanguages() map[string]string {
	return map[string]string{
		"en": "English",
		"ko": "한국어",
		"ru": "Русский",
		"pt": "Português",
	}
}

// initializeTexts initializes all text translations
func (l *Localization) initializeTexts() {
	l.texts["en"] = map[string]string{
		KeyAppTitle:          "yt-dlp GUI",
		KeyURLPlaceholder:    "Enter a video URL",
		KeyFetch:             "Fetch info",
		KeyFetching:          "Fetching...",
		KeyFetchingInfo:      "Fetching video information...\nPlease wait.",
		KeyVideoInfo:         "Video information",
		KeyFormat:            "Format:",
		KeySelectFormat:      "Select a format",
		KeySaveTo:            "Save to: %s",
		KeyChangeDestination: "Change folder",
		KeyChooseDestination: "Choose download folder",
		KeyProgress:          "Download progress",
		KeyDownload:          "Download",
		KeyCancel:            "Cancel",
		KeyOpenFolder:        "Open folder",
		KeySettings:          "Settings",
		KeyFile:              "File",
		KeyLanguage:          "Language",
		KeyDownloadDirectory: "Download Directory",
		KeyAutoReveal:        "Reveal file when download completes",
		KeySave:              "Save",
		KeyBrowse:            "Browse",
		KeySettingsSaved:     "Settings saved successfully!",
		KeyPleaseEnterURL:    "Please enter a URL.",
		KeyErrorOccurred:     "Error: %s",
		KeyNoFormats:         "No downloadable video formats were found.",
		KeyPreparing:         "Preparing...",
		KeyCalculating:       "calculating...",
		KeyDownloadingBytes:  "Downloading... %s %s",
		KeyCancelling:        "Cancelling download...",
		KeyDownloadCompleted: "Download completed!",
		KeyDownloadCancelled: "Download cancelled.",
		KeyDownloadFailed:    "Download failed: %s",
		KeyAlreadyRunning:    "A download is already running.",
		KeyErrorOpeningFile:  "Error opening file",
		KeyNoAudio:           "no audio",
		KeyNone:              "None",
		KeyNoTitle:           "No title",
		KeyNoChannel:         "No channel info",
		KeyInfoTitle:         "Title",
		KeyInfoChannel:       "Channel",
		KeyInfoUploaded:      "Uploaded",
		KeyInfoDuration:      "Duration",
		KeyInfoViews:         "Views",
		KeyInfoLikes:         "Likes",
		KeyInfoComments:      "Comments",
		KeyInfoCategories:    "Categories",
		KeyInfoTags:          "Tags",
		KeyInfoDescription:   "Description",
	}

	l.texts["ko"] = map[string]string{
		KeyAppTitle:          "YouTube 다운로더",
		KeyURLPlaceholder:    "YouTube URL을 입력하세요",
		KeyFetch:             "정보 가져오기",
		KeyFetching:          "가져오는 중...",
		KeyFetchingInfo:      "비디오 정보를 가져오는 중입니다...\n잠시만 기다려주세요.",
		KeyVideoInfo:         "비디오 정보",
		KeyFormat:            "포맷 선택:",
		KeySelectFormat:      "포맷을 선택하세요",
		KeySaveTo:            "저장 위치: %s",
		KeyChangeDestination: "위치 변경",
		KeyChooseDestination: "다운로드 위치 선택",
		KeyProgress:          "다운로드 진행 상태",
		KeyDownload:          "다운로드",
		KeyCancel:            "취소",
		KeyOpenFolder:        "폴더 열기",
		KeySettings:          "설정",
		KeyFile:              "파일",
		KeyLanguage:          "언어",
		KeyDownloadDirectory: "다운로드 폴더",
		KeyAutoReveal:        "다운로드 완료 시 파일 표시",
		KeySave:              "저장",
		KeyBrowse:            "찾아보기",
		KeySettingsSaved:     "설정이 저장되었습니다!",
		KeyPleaseEnterURL:    "URL을 입력해주세요.",
		KeyErrorOccurred:     "오류 발생: %s",
		KeyNoFormats:         "다운로드 가능한 비디오 포맷이 없습니다.",
		KeyPreparing:         "준비 중...",
		KeyCalculating:       "계산 중...",
		KeyDownloadingBytes:  "다운로드 중... %s %s",
		KeyCancelling:        "다운로드를 취소하는 중...",
		KeyDownloadCompleted: "다운로드가 완료되었습니다!",
		KeyDownloadCancelled: "다운로드가 취소되었습니다.",
		KeyDownloadFailed:    "오류 발생: %s",
		KeyAlreadyRunning:    "이미 다운로드가 진행 중입니다.",
		KeyErrorOpeningFile:  "파일 열기 오류",
		KeyNoAudio:           "오디오 없음",
		KeyNone:              "없음",
		KeyNoTitle:           "제목 없음",
		KeyNoChannel:         "채널 정보 없음",
		KeyInfoTitle:         "제목",
		KeyInfoChannel:       "채널",
		KeyInfoUploaded:      "업로드",
		KeyInfoDuration:      "재생시간",
		KeyInfoViews:         "조회수",
		KeyInfoLikes:         "좋아요",
		KeyInfoComments:      "댓글",
		KeyInfoCategories:    "카테고리",
		KeyInfoTags:          "태그",
		KeyInfoDescription:   "설명",
	}

	l.texts["ru"] = map[string]string{
		KeyAppTitle:          "yt-dlp Загрузчик",
		KeyURLPlaceholder:    "Введите URL видео",
		KeyFetch:             "Получить",
		KeyFetching:          "Загрузка...",
		KeyFetchingInfo:      "Получение информации о видео...\nПожалуйста, подождите.",
		KeyVideoInfo:         "Информация о видео",
		KeyFormat:            "Формат:",
		KeySelectFormat:      "Выберите формат",
		KeySaveTo:            "Сохранить в: %s",
		KeyChangeDestination: "Изменить папку",
		KeyChooseDestination: "Выберите папку загрузки",
		KeyProgress:          "Ход загрузки",
		KeyDownload:          "Скачать",
		KeyCancel:            "Отмена",
		KeyOpenFolder:        "Открыть папку",
		KeySettings:          "Настройки",
		KeyFile:              "Файл",
		KeyLanguage:          "Язык",
		KeyDownloadDirectory: "Папка загрузки",
		KeyAutoReveal:        "Показать файл после загрузки",
		KeySave:              "Сохранить",
		KeyBrowse:            "Обзор",
		KeySettingsSaved:     "Настройки успешно сохранены!",
		KeyPleaseEnterURL:    "Пожалуйста, введите URL.",
		KeyErrorOccurred:     "Ошибка: %s",
		KeyNoFormats:         "Не найдено видеоформатов для загрузки.",
		KeyPreparing:         "Подготовка...",
		KeyCalculating:       "вычисление...",
		KeyDownloadingBytes:  "Загрузка... %s %s",
		KeyCancelling:        "Отмена загрузки...",
		KeyDownloadCompleted: "Загрузка завершена!",
		KeyDownloadCancelled: "Загрузка отменена.",
		KeyDownloadFailed:    "Ошибка загрузки: %s",
		KeyAlreadyRunning:    "Загрузка уже выполняется.",
		KeyErrorOpeningFile:  "Ошибка открытия файла",
		KeyNoAudio:           "без звука",
		KeyNone:              "Нет",
		KeyNoTitle:           "Без названия",
		KeyNoChannel:         "Нет данных о канале",
		KeyInfoTitle:         "Название",
		KeyInfoChannel:       "Канал",
		KeyInfoUploaded:      "Загружено",
		KeyInfoDuration:      "Длительность",
		KeyInfoViews:         "Просмотры",
		KeyInfoLikes:         "Лайки",
		KeyInfoComments:      "Комментарии",
		KeyInfoCategories:    "Категории",
		KeyInfoTags:          "Теги",
		KeyInfoDescription:   "Описание",
	}

	l.texts["pt"] = map[string]string{
		KeyAppTitle:          "yt-dlp GUI",
		KeyURLPlaceholder:    "Digite a URL do vídeo",
		KeyFetch:             "Obter info",
		KeyFetching:          "Obtendo...",
		KeyFetchingInfo:      "Obtendo informações do vídeo...\nPor favor, aguarde.",
		KeyVideoInfo:         "Informações do vídeo",
		KeyFormat:            "Formato:",
		KeySelectFormat:      "Selecione um formato",
		KeySaveTo:            "Salvar em: %s",
		KeyChangeDestination: "Alterar pasta",
		KeyChooseDestination: "Escolha a pasta de download",
		KeyProgress:          "Progresso do download",
		KeyDownload:          "Baixar",
		KeyCancel:            "Cancelar",
		KeyOpenFolder:        "Abrir pasta",
		KeySettings:          "Configurações",
		KeyFile:              "Arquivo",
		KeyLanguage:          "Idioma",
		KeyDownloadDirectory: "Diretório de Download",
		KeyAutoReveal:        "Mostrar arquivo ao concluir",
		KeySave:              "Salvar",
		KeyBrowse:            "Navegar",
		KeySettingsSaved:     "Configurações salvas com sucesso!",
		KeyPleaseEnterURL:    "Por favor, digite uma URL.",
		KeyErrorOccurred:     "Erro: %s",
		KeyNoFormats:         "Nenhum formato de vídeo disponível.",
		KeyPreparing:         "Preparando...",
		KeyCalculating:       "calculando...",
		KeyDownloadingBytes:  "Baixando... %s %s",
		KeyCancelling:        "Cancelando download...",
		KeyDownloadCompleted: "Download concluído!",
		KeyDownloadCancelled: "Download cancelado.",
		KeyDownloadFailed:    "Falha no download: %s",
		KeyAlreadyRunning:    "Um download já está em andamento.",
		KeyErrorOpeningFile:  "Erro ao abrir arquivo",
		KeyNoAudio:           "sem áudio",
		KeyNone:              "Nenhum",
		KeyNoTitle:           "Sem título",
		KeyNoChannel:         "Sem informação do canal",
		KeyInfoTitle:         "Título",
		KeyInfoChannel:       "Canal",
		KeyInfoUploaded:      "Enviado",
		KeyInfoDuration:      "Duração",
		KeyInfoViews:         "Visualizações",
		KeyInfoLikes:         "Curtidas",
		KeyInfoComments:      "Comentários",
		KeyInfoCategories:    "Categorias",
		KeyInfoTags:          "Tags",
		KeyInfoDescription:   "Descrição",
	}
}
