package main

import (
	"github.com/spf13/pflag"

	"github.com/Elgenzay/kava.elg.gg/internal/biz/domain"
)

// snowflakeFlag is a pflag.Value holding a Discord ID
type snowflakeFlag struct {
	id domain.Snowflake
}

var _ pflag.Value = (*snowflakeFlag)(nil)

func (f *snowflakeFlag) String() string {
	return f.id.String()
}

func (f *snowflakeFlag) Set(s string) error {
	id, err := domain.ParseSnowflake(s)
	if err != nil {
		return err
	}
	f.id = id
	return nil
}

func (f *snowflakeFlag) Type() string {
	return "id"
}
