package i18n

var english = map[string]string{
	"goals":    "Goals",
	"history":  "History",
	"settings": "Settings",

	"addGoal":                "Add Goal",
	"goalName":               "Goal Name",
	"goalDescription":        "Goal Description",
	"descriptionPlaceholder": "Desirable but not required",
	"keepDescription":        "Keep original description",
	"viewDescription":        "View Description",
	"nameRequired":           "Please enter a goal name",
	"maxLengthReached":       "Maximum length reached (35 characters)",
	"repeatsRequired":        "Please enter the number of repeats",
	"repeatsPositive":        "Number of repeats must be positive",
	"minRepeatsError":        "Please enter a number not lower than {0}",
	"changeParameters":       "Change Parameters",
	"editGoal":               "Edit Goal",
	"repeats":                "Repeats",
	"noGoalsYet":             "No goals yet",
	"addFirstGoal":           "Press a to add your first goal and start tracking your progress",
	"undoLastTap":            "Undo last tap",
	"deleteGoal":             "Delete goal",
	"tapAnywhere":            "Press any key to continue",

	"current":   "Current",
	"heldOver":  "Held Over",
	"completed": "Completed",
	"continue":  "Continue",
	"holdOver":  "Hold Over",

	"delete":                   "Delete",
	"cancel":                   "Cancel",
	"save":                     "Save",
	"confirm":                  "Confirm",
	"startAgain":               "Start Again",
	"deleteGoalConfirmTitle":   "Delete Goal",
	"deleteGoalConfirmMessage": "Are you sure you want to delete this goal? This action cannot be undone.",

	"set":          "set",
	"repeat_one":   "repeat",
	"repeat_few":   "repeats",
	"repeat_many":  "repeats",
	"repeat_other": "repeats",

	"language":                     "Language",
	"theme":                        "Theme",
	"noCompletedGoals":             "No completed goals yet",
	"completedGoalsWillAppearHere": "Your completed goals will appear here",
	"colorTheme":                   "Color Theme",
	"bwTheme":                      "Black & White Theme",

	"congratulations": "Congratulations!",
	"goalCompleted":   "You have completed your goal!",

	"attempt":       "Attempt",
	"completedAt":   "Completed",
	"goalNotFound":  "Goal not found",
	"commandFailed": "Command failed",
	"saved":         "Saved",
	"reloaded":      "Reloaded from disk",
}

var russian = map[string]string{
	"goals":    "Цели",
	"history":  "История",
	"settings": "Настройки",

	"addGoal":                "Добавить цель",
	"goalName":               "Название цели",
	"goalDescription":        "Описание цели",
	"descriptionPlaceholder": "Желательно, но не обязательно",
	"keepDescription":        "Сохранить исходное описание",
	"viewDescription":        "Посмотреть описание",
	"nameRequired":           "Пожалуйста, введите название цели",
	"maxLengthReached":       "Достигнута максимальная длина (35 символов)",
	"repeatsRequired":        "Пожалуйста, введите количество повторений",
	"repeatsPositive":        "Количество повторений должно быть положительным",
	"minRepeatsError":        "Пожалуйста, введите число не меньше {0}",
	"changeParameters":       "Изменить параметры",
	"editGoal":               "Редактировать цель",
	"repeats":                "Повторения",
	"noGoalsYet":             "Пока нет целей",
	"addFirstGoal":           "Нажмите a, чтобы добавить свою первую цель и начать отслеживать прогресс",
	"undoLastTap":            "Отменить последнее нажатие",
	"deleteGoal":             "Удалить цель",
	"tapAnywhere":            "Нажмите любую клавишу, чтобы продолжить",

	"current":   "Текущие",
	"heldOver":  "Отложенные",
	"completed": "Завершённые",
	"continue":  "Продолжить",
	"holdOver":  "Отложить",

	"delete":                   "Удалить",
	"cancel":                   "Отмена",
	"save":                     "Сохранить",
	"confirm":                  "Подтвердить",
	"startAgain":               "Начать заново",
	"deleteGoalConfirmTitle":   "Удалить цель",
	"deleteGoalConfirmMessage": "Вы уверены, что хотите удалить эту цель? Это действие нельзя отменить.",

	"set":          "подход",
	"repeat_one":   "повторение",
	"repeat_few":   "повторения",
	"repeat_many":  "повторений",
	"repeat_other": "повторений",

	"language":                     "Язык",
	"theme":                        "Тема",
	"noCompletedGoals":             "Пока нет завершённых целей",
	"completedGoalsWillAppearHere": "Здесь будут отображаться ваши завершённые цели",
	"colorTheme":                   "Цветная",
	"bwTheme":                      "Чёрно-белая",

	"congratulations": "Поздравляем!",
	"goalCompleted":   "Вы достигли своей цели!",

	"attempt":       "Попытка",
	"completedAt":   "Завершено",
	"goalNotFound":  "Цель не найдена",
	"commandFailed": "Ошибка команды",
	"saved":         "Сохранено",
	"reloaded":      "Загружено с диска",
}
