// Package fabric connects the HTTP gateway to the peer's gateway service.
// The rest of the application depends only on the LedgerClient interface, so
// handlers are testable without a running network.
package fabric

import (
	"context"
	"crypto/x509"
	"fmt"
	"os"

	"github.com/hyperledger/fabric-gateway/pkg/client"
	"github.com/hyperledger/fabric-gateway/pkg/identity"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"

	"github.com/LewyHua/RiceTrace-sub000/config"
	"github.com/LewyHua/RiceTrace-sub000/internal/platform/logger"
)

// LedgerClient is the gateway's view of the on-ledger contract: submit for
// transactions that write, evaluate for reads.
type LedgerClient interface {
	Submit(ctx context.Context, fn string, args ...string) ([]byte, error)
	Evaluate(ctx context.Context, fn string, args ...string) ([]byte, error)
	Close() error
}

// gatewayClient implements LedgerClient over the Fabric Gateway gRPC API.
type gatewayClient struct {
	conn     *grpc.ClientConn
	gw       *client.Gateway
	contract *client.Contract
	log      *logger.Logger
}

// NewGatewayClient dials the peer endpoint and opens the configured channel
// and chaincode as one organization's user.
func NewGatewayClient(cfg *config.FabricConfig, log *logger.Logger) (LedgerClient, error) {
	certPEM, err := os.ReadFile(cfg.CertPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read signing certificate: %w", err)
	}
	cert, err := identity.CertificateFromPEM(certPEM)
	if err != nil {
		return nil, fmt.Errorf("failed to parse signing certificate: %w", err)
	}
	id, err := identity.NewX509Identity(cfg.MSPID, cert)
	if err != nil {
		return nil, fmt.Errorf("failed to build identity: %w", err)
	}

	keyPEM, err := os.ReadFile(cfg.KeyPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read private key: %w", err)
	}
	privateKey, err := identity.PrivateKeyFromPEM(keyPEM)
	if err != nil {
		return nil, fmt.Errorf("failed to parse private key: %w", err)
	}
	sign, err := identity.NewPrivateKeySign(privateKey)
	if err != nil {
		return nil, fmt.Errorf("failed to build signer: %w", err)
	}

	tlsPEM, err := os.ReadFile(cfg.TLSCertPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read TLS CA certificate: %w", err)
	}
	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(tlsPEM) {
		return nil, fmt.Errorf("no certificates found in %s", cfg.TLSCertPath)
	}
	creds := credentials.NewClientTLSFromCert(pool, cfg.GatewayPeer)

	conn, err := grpc.NewClient(cfg.PeerEndpoint, grpc.WithTransportCredentials(creds))
	if err != nil {
		return nil, fmt.Errorf("failed to create gRPC connection to %s: %w", cfg.PeerEndpoint, err)
	}

	gw, err := client.Connect(id, client.WithSign(sign), client.WithClientConnection(conn))
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to connect to fabric gateway: %w", err)
	}

	contract := gw.GetNetwork(cfg.ChannelName).GetContract(cfg.ChaincodeName)
	log.Info("connected to fabric gateway",
		"peer", cfg.PeerEndpoint, "channel", cfg.ChannelName, "chaincode", cfg.ChaincodeName, "msp", cfg.MSPID)

	return &gatewayClient{conn: conn, gw: gw, contract: contract, log: log}, nil
}

func (c *gatewayClient) Submit(ctx context.Context, fn string, args ...string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	result, err := c.contract.SubmitTransaction(fn, args...)
	if err != nil {
		c.log.Warn("submit failed", "fn", fn, "err", err)
		return nil, err
	}
	return result, nil
}

func (c *gatewayClient) Evaluate(ctx context.Context, fn string, args ...string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	result, err := c.contract.EvaluateTransaction(fn, args...)
	if err != nil {
		c.log.Warn("evaluate failed", "fn", fn, "err", err)
		return nil, err
	}
	return result, nil
}

func (c *gatewayClient) Close() error {
	c.gw.Close()
	return c.conn.Close()
}
