package nakama

const (
	// RpcSessionCreate opens an engine session and returns its token.
	RpcSessionCreate = "cardhunter_session_create"
	// RpcSessionReset clears a session's guess ledger for a new game.
	RpcSessionReset = "cardhunter_session_reset"
	RpcSessionEnd   = "cardhunter_session_end"

	RpcProposeGuess       = "cardhunter_propose_guess"
	RpcRecordGuess        = "cardhunter_record_guess"
	RpcDecideContinuation = "cardhunter_decide_continuation"
	RpcChooseOwnReveal    = "cardhunter_choose_own_reveal"
)

// Runtime env keys read at module init.
const (
	EnvSessionSecret = "cardhunter_session_secret"
	EnvConfigPath    = "cardhunter_config_path"
)

// gRPC status codes used by runtime.NewError.
const (
	codeInvalidArgument    = 3
	codeNotFound           = 5
	codePermissionDenied   = 7
	codeFailedPrecondition = 9
	codeInternal           = 13
	codeUnauthenticated    = 16
)
