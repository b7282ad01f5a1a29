// Package config는 애플리케이션 설정을 관리하는 패키지입니다.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config 인터페이스는 설정 값에 액세스하기 위한 메서드를 정의합니다.
type Config interface {
	GetString(key string) string
	GetInt(key string) int
	GetBool(key string) bool
	GetAll() map[string]interface{}
	// Unmarshal은 전체 설정을 mapstructure 태그가 붙은 구조체로 디코딩합니다.
	Unmarshal(out interface{}) error
	// ConfigFileUsed는 읽은 설정 파일 경로를 반환합니다. 파일 없이 기본값만 쓰면 빈 문자열입니다.
	ConfigFileUsed() string
}

// viperConfig는 viper를 사용하여 Config 인터페이스를 구현합니다.
type viperConfig struct {
	v *viper.Viper
}

func (c *viperConfig) GetString(key string) string { return c.v.GetString(key) }

func (c *viperConfig) GetInt(key string) int { return c.v.GetInt(key) }

func (c *viperConfig) GetBool(key string) bool { return c.v.GetBool(key) }

// GetAll은 전체 설정을 맵으로 반환합니다.
func (c *viperConfig) GetAll() map[string]interface{} { return c.v.AllSettings() }

func (c *viperConfig) Unmarshal(out interface{}) error { return c.v.Unmarshal(out) }

func (c *viperConfig) ConfigFileUsed() string { return c.v.ConfigFileUsed() }

// 설정 디렉토리 경로
const configDir = "configs"

// Load는 지정된 서비스 이름에 해당하는 설정 파일을 로드합니다.
//
// 탐색 순서는 $CONFIG_PATH, configs/{APP_ENV}, configs/example 입니다.
// 설정 파일이 없어도 defaults와 환경 변수({SERVICE}_SECTION_KEY)만으로 동작합니다.
func Load(serviceName string, defaults map[string]interface{}) (Config, error) {
	v := viper.New()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	// 환경 변수 설정
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev" // 기본 환경은 dev
	}

	v.SetConfigType("yaml")

	// 환경 변수 바인딩 설정
	v.SetEnvPrefix(strings.ToUpper(serviceName))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = filepath.Join(configDir, env)
	}

	v.SetConfigName(serviceName)
	v.AddConfigPath(configPath)
	// 현재 환경 디렉토리에 파일이 없으면 예제 설정을 사용
	v.AddConfigPath(filepath.Join(configDir, "example"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("설정 파일 로드 실패: %w", err)
		}
	}

	return &viperConfig{v: v}, nil
}
