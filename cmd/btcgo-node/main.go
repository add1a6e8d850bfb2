// Command btcgo-node is a thin wiring entrypoint over the consensus,
// storage, wallet, and miner packages. The CLI surface itself is out of
// scope for this core; this binary exists only so the packages can be
// exercised end to end.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/btcgo-edu/btcgo/consensus"
	"github.com/btcgo-edu/btcgo/miner"
	"github.com/btcgo-edu/btcgo/nodeconfig"
	"github.com/btcgo-edu/btcgo/storage"
	"github.com/btcgo-edu/btcgo/wallet"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cfg := nodeconfig.DefaultConfig()
	if v := os.Getenv("BTCGO_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if err := nodeconfig.Validate(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "btcgo-node: invalid config: %v\n", err)
		os.Exit(1)
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "btcgo-node: logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		logger.Fatal("create data dir", zap.Error(err))
	}

	cmd := os.Args[1]
	args := os.Args[2:]
	var cmdErr error
	switch cmd {
	case "genesis":
		cmdErr = cmdGenesis(logger, cfg)
	case "mine":
		cmdErr = cmdMine(logger, cfg, args)
	case "newaddress":
		cmdErr = cmdNewAddress(cfg)
	case "balance":
		cmdErr = cmdBalance(cfg, args)
	case "send":
		cmdErr = cmdSend(cfg, args)
	default:
		usage()
		os.Exit(2)
	}
	if cmdErr != nil {
		logger.Error("command failed", zap.String("command", cmd), zap.Error(cmdErr))
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: btcgo-node <genesis|mine|newaddress|balance|send> [flags]")
}

func newLogger(level string) (*zap.Logger, error) {
	var zapLevel zap.AtomicLevel
	if err := zapLevel.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}
	config := zap.NewProductionConfig()
	config.Level = zapLevel
	return config.Build()
}

func openStore(cfg nodeconfig.Config) (*storage.DB, error) {
	return storage.Open(cfg.DataDir)
}

func cmdGenesis(logger *zap.Logger, cfg nodeconfig.Config) error {
	db, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	genesis := consensus.NewGenesisBlock()
	if err := db.StoreBlock(&genesis); err != nil {
		return err
	}
	if err := db.StoreHeight(0, genesis.Hash()); err != nil {
		return err
	}
	if err := db.StoreTip(genesis.Hash()); err != nil {
		return err
	}
	if err := db.StoreChainHeight(1); err != nil {
		return err
	}
	if err := db.Flush(); err != nil {
		return err
	}

	coinbase := genesis.Transactions[0]
	outpoint := consensus.OutPoint{TxID: coinbase.TXID(), Vout: 0}
	if err := db.AddUTXO(outpoint, consensus.UTXO{
		Output:     coinbase.Outputs[0],
		Height:     0,
		IsCoinbase: true,
	}); err != nil {
		return err
	}

	logger.Info("genesis block stored", zap.String("hash", genesis.Hash().ToHex()))
	fmt.Printf("genesis hash: %s\n", genesis.Hash().ToHex())
	return nil
}

func cmdMine(logger *zap.Logger, cfg nodeconfig.Config, args []string) error {
	fs := flag.NewFlagSet("mine", flag.ExitOnError)
	prevHex := fs.String("prev", "", "previous block hash (hex, display order); defaults to current tip")
	_ = fs.Parse(args)

	db, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	var prevHash consensus.Hash256
	if *prevHex != "" {
		prevHash, err = consensus.Hash256FromHex(*prevHex)
		if err != nil {
			return err
		}
	} else {
		tip, ok, err := db.GetTip()
		if err != nil {
			return err
		}
		if ok {
			prevHash = tip
		}
	}

	header := consensus.BlockHeader{
		Version:       1,
		PrevBlockHash: prevHash,
		MerkleRoot:    consensus.Hash256Zero,
		Timestamp:     uint32(time.Now().Unix()),
		Bits:          cfg.MiningBit,
		Nonce:         0,
	}

	var result miner.Result
	if cfg.Parallel {
		result = miner.MineParallel(logger, header)
	} else {
		result = miner.MineScalar(header)
	}
	if !result.Success {
		return fmt.Errorf("mining failed: nonce space exhausted")
	}

	logger.Info("mined header",
		zap.Uint32("nonce", result.Nonce),
		zap.String("hash", result.Hash.ToHex()),
		zap.Uint64("attempts", result.Attempts),
		zap.Duration("duration", result.Duration),
		zap.Float64("hash_rate", result.HashRate()),
	)
	fmt.Printf("nonce: %d\nhash: %s\n", result.Nonce, result.Hash.ToHex())
	return nil
}

func cmdNewAddress(cfg nodeconfig.Config) error {
	ks, err := loadOrCreateKeystore(cfg)
	if err != nil {
		return err
	}
	addr, err := ks.Generate()
	if err != nil {
		return err
	}
	if err := ks.Save(cfg.KeystorePath()); err != nil {
		return err
	}
	fmt.Println(addr)
	return nil
}

func cmdBalance(cfg nodeconfig.Config, args []string) error {
	fs := flag.NewFlagSet("balance", flag.ExitOnError)
	_ = fs.Parse(args)

	ks, err := loadOrCreateKeystore(cfg)
	if err != nil {
		return err
	}
	address := ks.DefaultAddress()
	if fs.NArg() > 0 {
		address = fs.Arg(0)
	}
	if address == "" {
		return fmt.Errorf("no address available; run newaddress first")
	}

	db, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	balance, err := wallet.Balance(db, address)
	if err != nil {
		return err
	}
	fmt.Printf("%d\n", balance)
	return nil
}

func cmdSend(cfg nodeconfig.Config, args []string) error {
	fs := flag.NewFlagSet("send", flag.ExitOnError)
	fee := fs.Uint64("fee", 1000, "transaction fee in satoshis")
	_ = fs.Parse(args)
	if fs.NArg() < 2 {
		return fmt.Errorf("usage: send [--fee N] <to> <amount>")
	}
	to := fs.Arg(0)
	amount, err := strconv.ParseUint(fs.Arg(1), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid amount: %w", err)
	}

	ks, err := loadOrCreateKeystore(cfg)
	if err != nil {
		return err
	}
	from := ks.DefaultAddress()
	if from == "" {
		return fmt.Errorf("no default address; run newaddress first")
	}

	db, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	tx, err := wallet.Build(db, ks, from, to, amount, *fee)
	if err != nil {
		return err
	}
	fmt.Printf("txid: %s\ninputs: %d\noutputs: %d\n", tx.TXID().ToHex(), len(tx.Inputs), len(tx.Outputs))
	return nil
}

func loadOrCreateKeystore(cfg nodeconfig.Config) (*wallet.Keystore, error) {
	path := cfg.KeystorePath()
	if _, err := os.Stat(path); err == nil {
		return wallet.LoadKeystore(path)
	}
	return wallet.NewKeystore(), nil
}
