package core

// User facing notifications.
const (
	GenericErrorMsg = "Ocorreu um erro. Tente novamente."
	NetworkErrorMsg = "Erro de conexão. Verifique sua internet."

	LoginSuccessMsg       = "Login realizado com sucesso!"
	LoginErrorMsg         = "Erro ao realizar login."
	UnauthorizedMsg       = "Usuário ou senha incorretos."
	LogoutSuccessMsg      = "Logout realizado com sucesso!"
	LogoutErrorMsg        = "Erro ao realizar logout."
	StudentCreatedMsg     = "Estudante criado com sucesso!"
	StudentUpdatedMsg     = "Estudante atualizado com sucesso!"
	StudentDeletedMsg     = "Estudante removido com sucesso!"
	StudentCreateErrMsg   = "Erro ao criar estudante."
	StudentUpdateErrMsg   = "Erro ao atualizar estudante."
	StudentDeleteErrMsg   = "Erro ao remover estudante."
	ClassroomCreatedMsg   = "Turma criada com sucesso!"
	ClassroomUpdatedMsg   = "Turma atualizada com sucesso!"
	ClassroomDeletedMsg   = "Turma removida com sucesso!"
	ClassroomCreateErrMsg = "Erro ao criar turma."
	ClassroomUpdateErrMsg = "Erro ao atualizar turma."
	ClassroomDeleteErrMsg = "Erro ao remover turma."
	AttendanceSavedMsg    = "Presença registrada com sucesso!"
	AttendanceUpdatedMsg  = "Presença atualizada com sucesso!"
	AttendanceSaveErrMsg  = "Erro ao salvar presença."
	ReportSuccessMsg      = "Relatório gerado com sucesso!"

	NoStudentsMsg   = "Nenhum estudante encontrado."
	NoClassroomsMsg = "Nenhuma turma encontrada."
	NoResultsMsg    = "Nenhum resultado encontrado."
)
