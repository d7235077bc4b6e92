package i18n

// ============================================================
// Message tables
// ============================================================

var english = map[string]string{
	"window_title": "Interactive Geometric Analysis and Function Visualization Studio",

	"toolbar_grid":     "Grid",
	"toolbar_language": "Language",
	"toolbar_save":     "Save",
	"toolbar_load":     "Load",

	"tool_select":  "Select",
	"tool_point":   "Point",
	"tool_line":    "Line",
	"tool_circle":  "Circle",
	"tool_polygon": "Polygon",
	"tool_angle":   "Angle",
	"tool_text":    "Text",

	"function_input":     "y = ",
	"function_add":       "Add",
	"function_delete":    "Delete",
	"function_functions": "Functions",
	"function_hidden":    "hidden",

	"dialog_angle_title":  "Enter Angle",
	"dialog_angle_prompt": "Enter angle in degrees:",
	"dialog_text_title":   "Enter Text",
	"dialog_text_prompt":  "Enter text:",
	"dialog_save_title":   "Save Project",
	"dialog_save_prompt":  "File name:",
	"dialog_load_title":   "Load Project",
	"dialog_load_prompt":  "File name:",
	"dialog_ok":           "OK",
	"dialog_cancel":       "Cancel",

	"msg_saved":          "✓ Saved: %s",
	"msg_loaded":         "✓ Loaded: %s",
	"msg_error":          "✗ Error: %v",
	"msg_error_save":     "✗ Save error: %v",
	"msg_error_load":     "✗ Load error: %v",
	"msg_file_not_found": "✗ File not found: %s",
	"msg_initialized":    "✓ Canvas initialized",
	"msg_tool_changed":   "→ Tool: %s",
	"msg_click":          "Click: (%d, %d)",
	"msg_function_error": "✗ Error adding function '%s': %v",
	"msg_load_partial":   "Loaded with %d skipped items",

	"coord_readout": "x: %.2f, y: %.2f",
}

var russian = map[string]string{
	"window_title": "Студия интерактивного геометрического анализа и визуализации функций",

	"toolbar_grid":     "Сетка",
	"toolbar_language": "Язык",
	"toolbar_save":     "Сохранить",
	"toolbar_load":     "Загрузить",

	"tool_select":  "Выбрать",
	"tool_point":   "Точка",
	"tool_line":    "Линия",
	"tool_circle":  "Круг",
	"tool_polygon": "Многоугольник",
	"tool_angle":   "Угол",
	"tool_text":    "Текст",

	"function_input":     "y = ",
	"function_add":       "Добавить",
	"function_delete":    "Удалить",
	"function_functions": "Функции",
	"function_hidden":    "скрыта",

	"dialog_angle_title":  "Ввод угла",
	"dialog_angle_prompt": "Введите угол в градусах:",
	"dialog_text_title":   "Ввод текста",
	"dialog_text_prompt":  "Введите текст:",
	"dialog_save_title":   "Сохранить проект",
	"dialog_save_prompt":  "Имя файла:",
	"dialog_load_title":   "Загрузить проект",
	"dialog_load_prompt":  "Имя файла:",
	"dialog_ok":           "ОК",
	"dialog_cancel":       "Отмена",

	"msg_saved":          "✓ Сохранено: %s",
	"msg_loaded":         "✓ Загружено: %s",
	"msg_error":          "✗ Ошибка: %v",
	"msg_error_save":     "✗ Ошибка сохранения: %v",
	"msg_error_load":     "✗ Ошибка загрузки: %v",
	"msg_file_not_found": "✗ Файл не найден: %s",
	"msg_initialized":    "✓ Холст инициализирован",
	"msg_tool_changed":   "→ Инструмент: %s",
	"msg_click":          "Клик: (%d, %d)",
	"msg_function_error": "✗ Ошибка при добавлении функции '%s': %v",
	"msg_load_partial":   "Загружено, пропущено элементов: %d",

	"coord_readout": "x: %.2f, y: %.2f",
}
