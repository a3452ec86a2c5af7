package nakama

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/heroiclabs/nakama-common/runtime"

	"cardhunter/internal/app"
	"cardhunter/internal/bot"
	"cardhunter/internal/config"
)

// InitModule wires the engine RPCs into the Nakama runtime.
func InitModule(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, initializer runtime.Initializer) error {
	env, _ := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string)

	if path := env[EnvConfigPath]; path != "" {
		if err := config.LoadGameConfig(path); err != nil {
			return err
		}
	}
	cfg := config.GetGameConfig()
	if cfg.IdentitiesPath != "" {
		if err := bot.LoadIdentities(cfg.IdentitiesPath); err != nil {
			return err
		}
	}

	secret := env[EnvSessionSecret]
	if secret == "" {
		secret = "test-secret"
		logger.Warn("Session secret missing from env, using test default.")
	}
	sessions = app.NewSessionRegistry(cfg.SessionTTL(), cfg.ApplyTuning(bot.DefaultTuning))
	tokens = app.NewTokenService(secret, cfg.TokenIssuer, cfg.TokenTTL())

	if err := RegisterRPCs(initializer); err != nil {
		return err
	}

	logger.Info("Card Hunter engine module loaded.")
	return nil
}

// RegisterRPCs registers every engine RPC.
func RegisterRPCs(initializer runtime.Initializer) error {
	rpcs := []struct {
		id string
		fn func(context.Context, runtime.Logger, *sql.DB, runtime.NakamaModule, string) (string, error)
	}{
		{RpcSessionCreate, rpcCreateSession},
		{RpcSessionReset, rpcResetSession},
		{RpcSessionEnd, rpcEndSession},
		{RpcProposeGuess, rpcProposeGuess},
		{RpcRecordGuess, rpcRecordGuess},
		{RpcDecideContinuation, rpcDecideContinuation},
		{RpcChooseOwnReveal, rpcChooseOwnReveal},
	}
	for _, r := range rpcs {
		if err := initializer.RegisterRpc(r.id, r.fn); err != nil {
			return fmt.Errorf("register rpc %s: %w", r.id, err)
		}
	}
	return nil
}
