package storage

import (
	"testing"

	"github.com/btcgo-edu/btcgo/consensus"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestDB_StoreAndGetBlock(t *testing.T) {
	db := openTestDB(t)
	genesis := consensus.NewGenesisBlock()

	if err := db.StoreBlock(&genesis); err != nil {
		t.Fatalf("StoreBlock: %v", err)
	}
	if err := db.StoreHeight(0, genesis.Hash()); err != nil {
		t.Fatalf("StoreHeight: %v", err)
	}
	if err := db.StoreTip(genesis.Hash()); err != nil {
		t.Fatalf("StoreTip: %v", err)
	}
	if err := db.StoreChainHeight(1); err != nil {
		t.Fatalf("StoreChainHeight: %v", err)
	}
	if err := db.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	got, ok, err := db.GetBlock(genesis.Hash())
	if err != nil || !ok {
		t.Fatalf("GetBlock: ok=%v err=%v", ok, err)
	}
	if got.Hash() != genesis.Hash() {
		t.Fatal("retrieved block has a different hash")
	}

	byHeight, ok, err := db.GetBlockByHeight(0)
	if err != nil || !ok {
		t.Fatalf("GetBlockByHeight: ok=%v err=%v", ok, err)
	}
	if byHeight.Hash() != genesis.Hash() {
		t.Fatal("block retrieved by height has a different hash")
	}

	tip, ok, err := db.GetTip()
	if err != nil || !ok || tip != genesis.Hash() {
		t.Fatalf("GetTip: tip=%x ok=%v err=%v", tip, ok, err)
	}

	height, ok, err := db.GetChainHeight()
	if err != nil || !ok || height != 1 {
		t.Fatalf("GetChainHeight: height=%d ok=%v err=%v", height, ok, err)
	}
}

func TestDB_HasBlock(t *testing.T) {
	db := openTestDB(t)
	genesis := consensus.NewGenesisBlock()

	if has, err := db.HasBlock(genesis.Hash()); err != nil || has {
		t.Fatalf("HasBlock before store: has=%v err=%v", has, err)
	}
	if err := db.StoreBlock(&genesis); err != nil {
		t.Fatalf("StoreBlock: %v", err)
	}
	if has, err := db.HasBlock(genesis.Hash()); err != nil || !has {
		t.Fatalf("HasBlock after store: has=%v err=%v", has, err)
	}
}

func TestDB_UTXOAddRemove(t *testing.T) {
	db := openTestDB(t)
	point := consensus.OutPoint{TxID: consensus.DoubleSHA256([]byte("tx")), Vout: 0}
	u := consensus.UTXO{
		Output: consensus.TxOutput{Value: 1000, ScriptPubKey: consensus.P2PKHScript(consensus.Hash160([]byte("x")))},
		Height: 5,
	}

	if err := db.AddUTXO(point, u); err != nil {
		t.Fatalf("AddUTXO: %v", err)
	}
	if has, err := db.HasUTXO(point); err != nil || !has {
		t.Fatalf("HasUTXO after add: has=%v err=%v", has, err)
	}
	if err := db.RemoveUTXO(point); err != nil {
		t.Fatalf("RemoveUTXO: %v", err)
	}
	if has, err := db.HasUTXO(point); err != nil || has {
		t.Fatalf("HasUTXO after remove: has=%v err=%v", has, err)
	}
}

func TestDB_GetBalance(t *testing.T) {
	db := openTestDB(t)
	script := consensus.P2PKHScript(consensus.Hash160([]byte("recipient")))
	otherScript := consensus.P2PKHScript(consensus.Hash160([]byte("someone-else")))

	entries := []struct {
		txidSeed string
		value    uint64
		script   []byte
	}{
		{"a", 1000, script},
		{"b", 2000, script},
		{"c", 5000, otherScript},
	}
	for _, e := range entries {
		point := consensus.OutPoint{TxID: consensus.DoubleSHA256([]byte(e.txidSeed)), Vout: 0}
		u := consensus.UTXO{Output: consensus.TxOutput{Value: e.value, ScriptPubKey: e.script}}
		if err := db.AddUTXO(point, u); err != nil {
			t.Fatalf("AddUTXO(%s): %v", e.txidSeed, err)
		}
	}

	balance, err := db.GetBalance(script)
	if err != nil {
		t.Fatalf("GetBalance: %v", err)
	}
	if balance != 3000 {
		t.Fatalf("balance = %d, want 3000", balance)
	}

	utxos, err := db.GetUTXOsForScript(script)
	if err != nil {
		t.Fatalf("GetUTXOsForScript: %v", err)
	}
	if len(utxos) != 2 {
		t.Fatalf("got %d utxos for script, want 2", len(utxos))
	}
}
