package jwt

import (
	"maps"
	"time"

	libJWT "github.com/golang-jwt/jwt/v5"
)

const claimIssuer = "iss"

// Symmetric implements Codec with a single shared HMAC secret.
type Symmetric struct {
	secret []byte
	issuer string
	clock  clocker
	uuid   generator
	parser *libJWT.Parser
}

// NewHS256 constructs a Symmetric codec signing with HS256.
func NewHS256(cfg Config) (*Symmetric, error) {
	if len(cfg.Secret) < 32 {
		return nil, ErrSigningKeyTooShort
	}

	s := &Symmetric{
		secret: cfg.Secret,
		issuer: cfg.Issuer,
		clock:  cfg.Clock,
		uuid:   cfg.UUID,
	}

	opts := []libJWT.ParserOption{
		libJWT.WithValidMethods([]string{libJWT.SigningMethodHS256.Alg()}),
		libJWT.WithExpirationRequired(),
		libJWT.WithJSONNumber(),
		libJWT.WithTimeFunc(s.clock.Now),
	}
	if s.issuer != "" {
		opts = append(opts, libJWT.WithIssuer(s.issuer))
	}
	s.parser = libJWT.NewParser(opts...)

	return s, nil
}

func (s *Symmetric) Encode(claims Claims, ttl time.Duration) (string, error) {
	for _, k := range []string{ClaimExpiresAt, ClaimIssuedAt, ClaimID} {
		if _, ok := claims[k]; ok {
			return "", ErrReservedClaim
		}
	}

	now := s.clock.Now()

	payload := make(libJWT.MapClaims, len(claims)+4)
	maps.Copy(payload, claims)
	payload[ClaimExpiresAt] = now.Add(ttl).Unix()
	payload[ClaimIssuedAt] = now.Unix()
	payload[ClaimID] = s.uuid.Generate()
	if s.issuer != "" {
		payload[claimIssuer] = s.issuer
	}

	return libJWT.NewWithClaims(libJWT.SigningMethodHS256, payload).SignedString(s.secret)
}

func (s *Symmetric) Decode(token string) (Claims, error) {
	payload := libJWT.MapClaims{}

	parsed, err := s.parser.ParseWithClaims(token, payload, func(t *libJWT.Token) (any, error) {
		if _, ok := t.Method.(*libJWT.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}

	claims := make(Claims, len(payload))
	for k, v := range payload {
		switch k {
		case ClaimExpiresAt, ClaimIssuedAt, ClaimID:
			continue
		case claimIssuer:
			if s.issuer != "" {
				continue
			}
		}
		claims[k] = v
	}

	return claims, nil
}
