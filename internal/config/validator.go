package config

import (
	"errors"
	"fmt"
)

// ValidationError 配置验证错误
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("配置验证失败 [%s]: %v", e.Field, e.Err)
}

// Unwrap 暴露底层错误类别
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// ValidateMandatoryConfig 验证必填配置项
//
// 📋 **必填配置项**：
// - starknet.node_url / sender_address / private_key
// - starknet.deployment 必须是已知合约版本
// - api.http 端口与限流参数
// - log.level 必须是已知级别
func ValidateMandatoryConfig(p *Provider) error {
	var errs []error

	if p.starknetErr != nil {
		errs = append(errs, &ValidationError{Field: "starknet", Err: p.starknetErr})
	} else if err := p.starknet.Validate(); err != nil {
		errs = append(errs, &ValidationError{Field: "starknet", Err: err})
	}
	if err := p.api.HTTP.Validate(); err != nil {
		errs = append(errs, &ValidationError{Field: "api.http", Err: err})
	}
	if err := p.log.Validate(); err != nil {
		errs = append(errs, &ValidationError{Field: "log", Err: err})
	}

	return errors.Join(errs...)
}
