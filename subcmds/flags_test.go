// Copyright (c) 2025 BVK Chaitanya

package subcmds

import (
	"errors"
	"os"
	"testing"
)

func TestParseAmount(t *testing.T) {
	v, err := parseAmount("size", "")
	if err != nil || v != nil {
		t.Errorf("empty value: want (nil, nil) got (%v, %v)", v, err)
	}

	v, err = parseAmount("size", "123.45")
	if err != nil {
		t.Fatal(err)
	}
	if v == nil || v.String() != "123.45" {
		t.Errorf("want 123.45 got %v", v)
	}

	if _, err := parseAmount("size", "abc"); err == nil {
		t.Errorf("invalid value must fail")
	}
	if _, err := parseAmount("size", "-1"); !errors.Is(err, os.ErrInvalid) {
		t.Errorf("negative value: want os.ErrInvalid, got %v", err)
	}
	if _, err := parseAmount("size", "0"); !errors.Is(err, os.ErrInvalid) {
		t.Errorf("zero value: want os.ErrInvalid, got %v", err)
	}
}

func TestFlagsCheck(t *testing.T) {
	f := &Flags{pair: "PURR/USDC", baseToken: "PURR", quoteToken: "USDC"}
	if err := f.check(); err != nil {
		t.Fatal(err)
	}

	f = &Flags{pair: "", baseToken: "PURR", quoteToken: "USDC"}
	if err := f.check(); !errors.Is(err, os.ErrInvalid) {
		t.Errorf("empty pair: want os.ErrInvalid, got %v", err)
	}
}

func TestWithdrawCheckBeforeNetwork(t *testing.T) {
	c := &Withdraw{amount: "10"}
	if err := c.checkWithdraw(); !errors.Is(err, os.ErrInvalid) {
		t.Errorf("missing destination: want os.ErrInvalid, got %v", err)
	}

	c = &Withdraw{destination: "0x2222222222222222222222222222222222222222"}
	if err := c.checkWithdraw(); !errors.Is(err, os.ErrInvalid) {
		t.Errorf("missing amount: want os.ErrInvalid, got %v", err)
	}

	c = &Withdraw{destination: "2222", amount: "10"}
	if err := c.checkWithdraw(); !errors.Is(err, os.ErrInvalid) {
		t.Errorf("malformed destination: want os.ErrInvalid, got %v", err)
	}

	c = &Withdraw{destination: "0x2222222222222222222222222222222222222222", amount: "10"}
	if err := c.checkWithdraw(); err != nil {
		t.Errorf("valid withdraw flags must pass, got %v", err)
	}
}
