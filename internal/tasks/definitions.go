package tasks

// DefineTasks registers all available tasks on r
func DefineTasks(r *Registry) {
	r.Register(LogInfoTask.TaskID(), LogInfoTask.HandleExecution)
	r.Register(RefreshDashboardTask.TaskID(), RefreshDashboardTask.HandleExecution)
}
