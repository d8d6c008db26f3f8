package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/ogdevs/backoffice-client/internal/crypto"
	"github.com/ogdevs/backoffice-client/internal/logger"
	"github.com/ogdevs/backoffice-client/models"
)

const (
	credentialsTable = "credentials"
	// the table holds at most one row
	sessionRowID = 1
)

var credentialColumns = []string{
	"subject",
	"username",
	"access_token",
	"refresh_token",
	"expires_at",
	"roles",
}

type credentialRepository struct {
	*DB
	sealer crypto.Sealer
	logger *logger.Logger
	now    func() time.Time
}

// NewCredentialRepository stores the session in db. Both tokens pass through
// sealer; a nil sealer stores them as they are.
func NewCredentialRepository(db *DB, sealer crypto.Sealer, logger *logger.Logger) CredentialRepository {
	if sealer == nil {
		sealer = crypto.Plain{}
	}
	return &credentialRepository{
		DB:     db,
		sealer: sealer,
		logger: logger,
		now:    time.Now,
	}
}

func (r *credentialRepository) Save(ctx context.Context, credential models.Credential) error {
	log := logger.FromContext(ctx)

	var expiresAt int64
	if !credential.ExpiresAt.IsZero() {
		expiresAt = credential.ExpiresAt.Unix()
	}

	access, err := r.sealer.Seal(credential.AccessToken)
	if err != nil {
		log.Err(err).Str("func", "credentialRepository.Save").Msg("failed to seal access token")
		return fmt.Errorf("%w: %w", ErrSealing, err)
	}
	refresh, err := r.sealer.Seal(credential.RefreshToken)
	if err != nil {
		log.Err(err).Str("func", "credentialRepository.Save").Msg("failed to seal refresh token")
		return fmt.Errorf("%w: %w", ErrSealing, err)
	}

	query, args, err := sq.Insert(credentialsTable).
		Columns(append([]string{"id"}, append(credentialColumns, "updated_at")...)...).
		Values(
			sessionRowID,
			credential.Subject,
			credential.Username,
			access,
			refresh,
			expiresAt,
			strings.Join(credential.Roles, ","),
			r.now().Unix(),
		).
		Suffix(upsertSuffix()).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "credentialRepository.Save").Msg("failed to build upsert")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.DB.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "credentialRepository.Save").
			Str("username", credential.Username).
			Msg("failed to execute upsert for credential")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (r *credentialRepository) Load(ctx context.Context) (models.Credential, error) {
	log := logger.FromContext(ctx)

	query, args, err := sq.Select(credentialColumns...).
		From(credentialsTable).
		Where(sq.Eq{"id": sessionRowID}).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "credentialRepository.Load").Msg("failed to build select")
		return models.Credential{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var (
		credential models.Credential
		expiresAt  int64
		roles      string
	)
	err = r.DB.QueryRowContext(ctx, query, args...).Scan(
		&credential.Subject,
		&credential.Username,
		&credential.AccessToken,
		&credential.RefreshToken,
		&expiresAt,
		&roles,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Credential{}, ErrCredentialNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "credentialRepository.Load").Msg("failed to scan credential row")
		return models.Credential{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	if expiresAt > 0 {
		credential.ExpiresAt = time.Unix(expiresAt, 0)
	}
	if roles != "" {
		credential.Roles = strings.Split(roles, ",")
	}

	if credential.AccessToken, err = r.sealer.Open(credential.AccessToken); err != nil {
		log.Err(err).Str("func", "credentialRepository.Load").Msg("failed to open access token")
		return models.Credential{}, fmt.Errorf("%w: %w", ErrSealing, err)
	}
	if credential.RefreshToken, err = r.sealer.Open(credential.RefreshToken); err != nil {
		log.Err(err).Str("func", "credentialRepository.Load").Msg("failed to open refresh token")
		return models.Credential{}, fmt.Errorf("%w: %w", ErrSealing, err)
	}

	return credential, nil
}

func (r *credentialRepository) Clear(ctx context.Context) error {
	log := logger.FromContext(ctx)

	query, args, err := sq.Delete(credentialsTable).
		Where(sq.Eq{"id": sessionRowID}).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "credentialRepository.Clear").Msg("failed to build delete")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.DB.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).Str("func", "credentialRepository.Clear").Msg("failed to delete credential")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func upsertSuffix() string {
	sets := make([]string, 0, len(credentialColumns)+1)
	for _, c := range append(credentialColumns, "updated_at") {
		sets = append(sets, c+" = excluded."+c)
	}
	return "ON CONFLICT(id) DO UPDATE SET " + strings.Join(sets, ", ")
}
