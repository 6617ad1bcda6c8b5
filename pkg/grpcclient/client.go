// Package grpcclient provides a pooled gRPC client for chain interaction
package grpcclient

import (
	"context"
	"encoding/hex"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	sdkmath "cosmossdk.io/math"
	"github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/crypto/keys/secp256k1"
	cryptotypes "github.com/cosmos/cosmos-sdk/crypto/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	txtypes "github.com/cosmos/cosmos-sdk/types/tx"
	"github.com/cosmos/cosmos-sdk/types/tx/signing"
	authsigning "github.com/cosmos/cosmos-sdk/x/auth/signing"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	savingstypes "github.com/Candra0x6/Roca-sub001/x/savings/types"
)

// Config holds gRPC client configuration
type Config struct {
	GRPCAddr      string
	ChainID       string
	AccountNumber uint64
	GasLimit      uint64
	GasPrice      string
	PoolSize      int           // Connection pool size
	Timeout       time.Duration // Request timeout
	RetryAttempts int           // Retry attempts on failure
	BatchSize     int           // Max messages per batch
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		GRPCAddr:      "localhost:9090",
		ChainID:       "roca-1",
		AccountNumber: 0,
		GasLimit:      200000,
		GasPrice:      "0.001uroca",
		PoolSize:      4,
		Timeout:       5 * time.Second,
		RetryAttempts: 3,
		BatchSize:     50,
	}
}

// Client is a gRPC client with connection pooling and in-memory signing
type Client struct {
	config    *Config
	pool      []*grpc.ClientConn
	poolIndex uint64
	mu        sync.RWMutex

	// Cached signer info
	privKey  cryptotypes.PrivKey
	pubKey   cryptotypes.PubKey
	address  sdk.AccAddress
	sequence uint64
	seqMu    sync.Mutex

	// Metrics
	txCount      uint64
	successCount uint64
	failCount    uint64
	totalLatency int64

	// TX encoder
	txConfig client.TxConfig
}

// NewClient creates a new gRPC client
func NewClient(config *Config, privKeyHex string) (*Client, error) {
	if config == nil {
		config = DefaultConfig()
	}

	// Decode private key
	privKeyBytes, err := hex.DecodeString(privKeyHex)
	if err != nil {
		return nil, fmt.Errorf("decode private key: %w", err)
	}

	privKey := &secp256k1.PrivKey{Key: privKeyBytes}
	pubKey := privKey.PubKey()
	address := sdk.AccAddress(pubKey.Address())

	c := &Client{
		config:   config,
		pool:     make([]*grpc.ClientConn, config.PoolSize),
		privKey:  privKey,
		pubKey:   pubKey,
		address:  address,
		sequence: 0,
	}

	// Initialize connection pool
	for i := 0; i < config.PoolSize; i++ {
		conn, err := grpc.Dial(
			config.GRPCAddr,
			grpc.WithTransportCredentials(insecure.NewCredentials()),
			grpc.WithDefaultCallOptions(
				grpc.MaxCallRecvMsgSize(1024*1024*10), // 10MB
				grpc.MaxCallSendMsgSize(1024*1024*10),
			),
		)
		if err != nil {
			return nil, fmt.Errorf("connect to gRPC: %w", err)
		}
		c.pool[i] = conn
	}

	return c, nil
}

// getConn returns a connection from the pool (round-robin)
func (c *Client) getConn() *grpc.ClientConn {
	idx := atomic.AddUint64(&c.poolIndex, 1) % uint64(len(c.pool))
	return c.pool[idx]
}

// nextSequence atomically increments and returns the next sequence number
func (c *Client) nextSequence() uint64 {
	c.seqMu.Lock()
	defer c.seqMu.Unlock()
	seq := c.sequence
	c.sequence++
	return seq
}

// TxResult contains the result of a broadcast operation
type TxResult struct {
	TxHash  string
	Success bool
	Latency time.Duration
	Error   error
}

// CreatePool submits a pool creation transaction
func (c *Client) CreatePool(ctx context.Context, name, contribution string, maxMembers, duration int64, strategy string) *TxResult {
	msg := &savingstypes.MsgCreatePool{
		Creator:            c.address.String(),
		Name:               name,
		ContributionAmount: contribution,
		MaxMembers:         maxMembers,
		Duration:           duration,
		StrategyTag:        strategy,
	}
	return c.broadcast(ctx, []sdk.Msg{msg}, 1)
}

// JoinPool submits a single join transaction
func (c *Client) JoinPool(ctx context.Context, poolID uint64, amount string) *TxResult {
	msg := &savingstypes.MsgJoinPool{
		Member: c.address.String(),
		PoolID: poolID,
		Amount: amount,
	}
	return c.broadcast(ctx, []sdk.Msg{msg}, 1)
}

// WithdrawShare submits a share withdrawal transaction
func (c *Client) WithdrawShare(ctx context.Context, poolID uint64) *TxResult {
	msg := &savingstypes.MsgWithdrawShare{
		Member: c.address.String(),
		PoolID: poolID,
	}
	return c.broadcast(ctx, []sdk.Msg{msg}, 1)
}

// BatchJoin represents one join in a batch
type BatchJoin struct {
	PoolID uint64
	Amount string
}

// BatchJoinPools submits multiple joins in a single transaction
func (c *Client) BatchJoinPools(ctx context.Context, joins []BatchJoin) *TxResult {
	if len(joins) == 0 {
		return &TxResult{Error: fmt.Errorf("no joins to submit")}
	}
	if len(joins) > c.config.BatchSize {
		return &TxResult{Error: fmt.Errorf("batch size %d exceeds max %d", len(joins), c.config.BatchSize)}
	}

	msgs := make([]sdk.Msg, len(joins))
	for i, join := range joins {
		msgs[i] = &savingstypes.MsgJoinPool{
			Member: c.address.String(),
			PoolID: join.PoolID,
			Amount: join.Amount,
		}
	}
	return c.broadcast(ctx, msgs, len(joins))
}

// broadcast signs and broadcasts messages, updating client metrics
func (c *Client) broadcast(ctx context.Context, msgs []sdk.Msg, opCount int) *TxResult {
	start := time.Now()
	result := &TxResult{}

	atomic.AddUint64(&c.txCount, uint64(opCount))

	seq := c.nextSequence()

	txBytes, err := c.buildSignedTxMulti(msgs, seq)
	if err != nil {
		result.Error = err
		result.Latency = time.Since(start)
		atomic.AddUint64(&c.failCount, uint64(opCount))
		return result
	}

	conn := c.getConn()
	txClient := txtypes.NewServiceClient(conn)

	resp, err := txClient.BroadcastTx(ctx, &txtypes.BroadcastTxRequest{
		TxBytes: txBytes,
		Mode:    txtypes.BroadcastMode_BROADCAST_MODE_ASYNC,
	})

	result.Latency = time.Since(start)
	atomic.AddInt64(&c.totalLatency, int64(result.Latency))

	if err != nil {
		result.Error = err
		atomic.AddUint64(&c.failCount, uint64(opCount))
		return result
	}

	if resp.TxResponse.Code == 0 {
		result.Success = true
		result.TxHash = resp.TxResponse.TxHash
		atomic.AddUint64(&c.successCount, uint64(opCount))
	} else {
		result.Error = fmt.Errorf("tx failed: %s", resp.TxResponse.RawLog)
		atomic.AddUint64(&c.failCount, uint64(opCount))
	}

	return result
}

// buildSignedTxMulti builds and signs a multi-message transaction
func (c *Client) buildSignedTxMulti(msgs []sdk.Msg, sequence uint64) ([]byte, error) {
	txBuilder := c.txConfig.NewTxBuilder()

	if err := txBuilder.SetMsgs(msgs...); err != nil {
		return nil, err
	}

	fee := sdk.NewCoins(sdk.NewCoin("uroca", sdkmath.NewInt(int64(c.config.GasLimit)/100)))
	txBuilder.SetFeeAmount(fee)
	txBuilder.SetGasLimit(c.config.GasLimit * uint64(len(msgs)))

	sigV2 := signing.SignatureV2{
		PubKey: c.pubKey,
		Data: &signing.SingleSignatureData{
			SignMode:  signing.SignMode_SIGN_MODE_DIRECT,
			Signature: nil,
		},
		Sequence: sequence,
	}

	if err := txBuilder.SetSignatures(sigV2); err != nil {
		return nil, err
	}

	signerData := authsigning.SignerData{
		ChainID:       c.config.ChainID,
		AccountNumber: c.config.AccountNumber,
		Sequence:      sequence,
	}

	signBytes, err := authsigning.GetSignBytesAdapter(
		context.Background(),
		c.txConfig.SignModeHandler(),
		signing.SignMode_SIGN_MODE_DIRECT,
		signerData,
		txBuilder.GetTx(),
	)
	if err != nil {
		return nil, err
	}

	signature, err := c.privKey.Sign(signBytes)
	if err != nil {
		return nil, err
	}

	sigV2.Data = &signing.SingleSignatureData{
		SignMode:  signing.SignMode_SIGN_MODE_DIRECT,
		Signature: signature,
	}

	if err := txBuilder.SetSignatures(sigV2); err != nil {
		return nil, err
	}

	return c.txConfig.TxEncoder()(txBuilder.GetTx())
}

// GetMetrics returns current client metrics
func (c *Client) GetMetrics() (txCount, successCount, failCount uint64, avgLatency time.Duration) {
	txCount = atomic.LoadUint64(&c.txCount)
	successCount = atomic.LoadUint64(&c.successCount)
	failCount = atomic.LoadUint64(&c.failCount)

	if successCount > 0 {
		avgLatency = time.Duration(atomic.LoadInt64(&c.totalLatency) / int64(successCount))
	}
	return
}

// ResetMetrics resets all metrics
func (c *Client) ResetMetrics() {
	atomic.StoreUint64(&c.txCount, 0)
	atomic.StoreUint64(&c.successCount, 0)
	atomic.StoreUint64(&c.failCount, 0)
	atomic.StoreInt64(&c.totalLatency, 0)
}

// Close closes all connections in the pool
func (c *Client) Close() error {
	for _, conn := range c.pool {
		if err := conn.Close(); err != nil {
			return err
		}
	}
	return nil
}
