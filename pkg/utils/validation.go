package utils

import (
	"fmt"
	"net"
	"regexp"
	"strconv"
	"strings"
)

var (
	// 인터페이스 이름 패턴: 소문자/숫자로 시작, 커널 제한 15자
	interfacePattern = regexp.MustCompile(`^[a-z][a-zA-Z0-9\-\.]{0,14}$`)

	// 호스트네임 패턴
	hostnamePattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9\-\.]*[a-zA-Z0-9]$`)

	// MAC 주소 패턴 (콜론 또는 하이픈 구분)
	macPattern = regexp.MustCompile(`^([0-9A-Fa-f]{2}[:-]){5}([0-9A-Fa-f]{2})$`)
)

// ZeroMacAddress는 유효하지 않은 것으로 취급되는 제로 하드웨어 주소입니다
const ZeroMacAddress = "00:00:00:00:00:00"

// ValidateIPv4는 점 표기 IPv4 주소가 유효한지 검증
func ValidateIPv4(address string) error {
	if address == "" {
		return fmt.Errorf("IP 주소가 비어있음")
	}

	octets := strings.Split(address, ".")
	if len(octets) != 4 {
		return fmt.Errorf("잘못된 IPv4 형식: %s (옥텟 4개 필요)", address)
	}

	for _, octet := range octets {
		if octet == "" || len(octet) > 3 {
			return fmt.Errorf("잘못된 옥텟: %q (%s)", octet, address)
		}
		value, err := strconv.Atoi(octet)
		if err != nil {
			return fmt.Errorf("숫자가 아닌 옥텟: %q (%s)", octet, address)
		}
		if value < 0 || value > 255 {
			return fmt.Errorf("옥텟 범위 초과: %d (%s)", value, address)
		}
	}

	return nil
}

// ValidateCIDR은 CIDR 프리픽스 길이가 유효한지 검증 (1~32)
func ValidateCIDR(prefix int) error {
	if prefix < 1 || prefix > 32 {
		return fmt.Errorf("잘못된 CIDR 프리픽스: %d (1~32 범위여야 함)", prefix)
	}
	return nil
}

// ValidateInterfaceName은 인터페이스 이름이 유효한지 검증
func ValidateInterfaceName(name string) error {
	if name == "" {
		return fmt.Errorf("인터페이스 이름이 비어있음")
	}

	if !interfacePattern.MatchString(name) {
		return fmt.Errorf("잘못된 인터페이스 이름 형식: %s", name)
	}

	return nil
}

// ValidateHostname은 호스트네임이 유효한지 검증
func ValidateHostname(hostname string) error {
	if hostname == "" {
		return fmt.Errorf("호스트네임이 비어있음")
	}

	if len(hostname) > 253 {
		return fmt.Errorf("호스트네임이 너무 김: %d자 (최대 253자)", len(hostname))
	}

	if !hostnamePattern.MatchString(hostname) {
		return fmt.Errorf("잘못된 호스트네임 형식: %s", hostname)
	}

	return nil
}

// ValidateMACAddress는 MAC 주소가 유효한지 검증 (제로 주소 거부)
func ValidateMACAddress(mac string) error {
	if mac == "" {
		return fmt.Errorf("MAC 주소가 비어있음")
	}

	if !macPattern.MatchString(mac) {
		return fmt.Errorf("잘못된 MAC 주소 형식: %s", mac)
	}

	if strings.EqualFold(mac, ZeroMacAddress) {
		return fmt.Errorf("제로 MAC 주소는 사용할 수 없음")
	}

	return nil
}

// PrefixToNetmask는 CIDR 프리픽스를 점 표기 넷마스크로 변환
// 유효하지 않은 프리픽스는 호출 전에 ValidateCIDR로 걸러져야 함
func PrefixToNetmask(prefix int) string {
	mask := net.CIDRMask(prefix, 32)
	return net.IP(mask).String()
}
