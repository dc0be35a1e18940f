package handlers

// Success messages shown to the user. The frontend is Korean-only.
const (
	MsgLoginOK    = "로그인 성공"
	MsgRegistered = "회원가입이 완료되었습니다!"
	MsgLoggedOut  = "로그아웃되었습니다."

	MsgTaskAdded   = "작업이 추가되었습니다!"
	MsgTaskUpdated = "작업이 수정되었습니다!"
	MsgTaskDeleted = "작업이 삭제되었습니다!"
	MsgTaskToggled = "작업 상태가 변경되었습니다."
)
